package pinata

import (
	"encoding/json"
	"fmt"
)

// FileQuery narrows a file listing. GroupID scopes the listing to one
// group; Metadata is a pre-encoded keyvalues predicate (see
// CategoryFilter). Both are fixed for the whole drain of a listing.
type FileQuery struct {
	GroupID  string
	Metadata string
}

type metadataPredicate struct {
	Value any    `json:"value"`
	Op    string `json:"op"`
}

/*
CategoryFilter encodes a category predicate in the format Pinata expects
in its metadata[keyvalues] query parameter: a single category becomes an
"eq" match, several become an "in" match over the list, and no
categories means no filter at all (an empty string).
*/
func CategoryFilter(categories []string) (string, error) {
	if len(categories) == 0 {
		return "", nil
	}

	predicate := metadataPredicate{
		Op: "in",
	}

	if len(categories) == 1 {
		predicate.Op = "eq"
		predicate.Value = categories[0]
	} else {
		predicate.Value = categories
	}

	encoded, err := json.Marshal(map[string]metadataPredicate{
		"category": predicate,
	})

	if err != nil {
		return "", fmt.Errorf("error encoding category filter: %w", err)
	}

	return string(encoded), nil
}

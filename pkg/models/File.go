package models

// PinataFile mirrors the file records Pinata returns from its list and
// upload endpoints.
type PinataFile struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Cid           string            `json:"cid"`
	Size          uint64            `json:"size"`
	NumberOfFiles uint64            `json:"number_of_files"`
	MimeType      string            `json:"mime_type"`
	GroupID       string            `json:"group_id"`
	Keyvalues     map[string]string `json:"keyvalues"`
	CreatedAt     string            `json:"created_at"`
}

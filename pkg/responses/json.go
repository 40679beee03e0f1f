package responses

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nkemjikanma/esemese-backend/pkg/pinata"
)

// ErrorResponse is the envelope every failed request gets: a generic
// category in Error and the original diagnostic text in Message, so
// nothing is silently swallowed.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, category, message string) {
	JSON(w, status, ErrorResponse{
		Success: false,
		Error:   category,
		Message: message,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "Bad request", message)
}

/*
WriteError maps a failure from the Pinata layer onto the taxonomy the
clients see: configuration problems and malformed upstream data are our
fault (500), everything involving the upstream service is a bad gateway
(502). The diagnostic text always rides along in the message field.
*/
func WriteError(w http.ResponseWriter, err error) {
	var remoteErr *pinata.RemoteError

	switch {
	case errors.Is(err, pinata.ErrMissingCredential):
		Error(w, http.StatusInternalServerError, "Server configuration error", err.Error())

	case errors.Is(err, pinata.ErrMalformedResponse):
		Error(w, http.StatusInternalServerError, "JSON parsing error", err.Error())

	case errors.As(err, &remoteErr):
		Error(w, http.StatusBadGateway, "External API error", err.Error())

	default:
		Error(w, http.StatusBadGateway, "Error communicating with external service", err.Error())
	}
}

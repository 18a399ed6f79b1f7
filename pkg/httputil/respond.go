package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/beeline/pkg/errors"
)

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as a JSON error body with the status of its code.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := StatusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	WriteJSON(w, status, ErrorBody{Error: msg, Code: code})
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

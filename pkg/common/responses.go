package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "symptomcheck/pkg/errors"
)

// MaxBodyBytes caps request bodies read by DecodeJSONBody
const MaxBodyBytes int64 = 64 << 10

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent sends an empty 204 response
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSONBody parses a JSON request body with a size limit. Malformed
// bodies become validation errors.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return pkgerrors.NewValidationError("request body is required")
		case errors.As(err, &maxErr):
			return pkgerrors.NewValidationError("request body is too large").WithStatus(http.StatusRequestEntityTooLarge)
		default:
			return pkgerrors.NewValidationError("invalid request body").WithCause(err)
		}
	}
	return nil
}

// Package webjson holds the JSON request/response helpers shared by all
// API features. Error bodies use the {"detail": "..."} shape the frontend
// already consumes.
package webjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/apperr"
)

const maxBodyBytes = 1 << 20 // request bodies are small JSON documents

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK encodes v as JSON with status 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Message writes {"message": msg} with status 200.
func Message(w http.ResponseWriter, msg string) {
	OK(w, map[string]string{"message": msg})
}

// Error translates err through the apperr taxonomy into a status code and a
// {"detail": "..."} body.
func Error(w http.ResponseWriter, err error) {
	Write(w, apperr.Status(err), map[string]string{"detail": apperr.Detail(err)})
}

// Decode reads the request body into dst, capping the body size. A malformed
// or empty body yields a Validation error ready for Error.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "Invalid request body", err)
	}
	return nil
}

// internal/app/system/httpjson/httpjson.go
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps request bodies read by Read.
const MaxBodyBytes = 1 << 20

// Envelope is the success response shape shared by every endpoint.
type Envelope struct {
	Success    bool `json:"success"`
	Count      *int `json:"count,omitempty"`
	Pagination any  `json:"pagination,omitempty"`
	Data       any  `json:"data"`
}

// failure is the error response shape.
type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// OK writes {success: true, data}.
func OK(w http.ResponseWriter, status int, data any) error {
	return Write(w, status, Envelope{Success: true, Data: data})
}

// OKCount writes {success: true, count, data}.
func OKCount(w http.ResponseWriter, count int, data any) error {
	return Write(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Fail writes {success: false, error: message}.
func Fail(w http.ResponseWriter, status int, message string) error {
	return Write(w, status, failure{Success: false, Error: message})
}

// ErrEmptyBody is returned by Read when the request carries no JSON.
var ErrEmptyBody = errors.New("request body must not be empty")

// Read decodes a single JSON object from the request body into dst.
// Unknown fields are allowed so clients may send whole documents; handlers
// copy only the fields they accept.
func Read(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		var (
			maxErr    *http.MaxBytesError
			syntaxErr *json.SyntaxError
			typeErr   *json.UnmarshalTypeError
		)
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body must not be larger than %d bytes", maxErr.Limit)
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("malformed JSON at position %d", syntaxErr.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("malformed JSON")
		case errors.As(err, &typeErr):
			// Go type names stay out of client messages.
			if typeErr.Field != "" {
				return fmt.Errorf("invalid value for field %s", typeErr.Field)
			}
			return errors.New("request body must be a JSON object")
		}
		return errors.New("malformed JSON")
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

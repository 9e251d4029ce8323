package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/domain/models"
)

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the token middleware and injects the user directly.
func WithUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}

// NewJSONRequest creates an HTTP request with body encoded as JSON.
// A nil body produces a request without one.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// Response is the decoded JSON envelope written by the API.
type Response struct {
	Success    bool            `json:"success"`
	Count      *int            `json:"count"`
	Pagination json.RawMessage `json:"pagination"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Token      string          `json:"token"`
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Decode parses the response envelope, failing the test on malformed JSON.
func (r *ResponseRecorder) Decode(t *testing.T) Response {
	t.Helper()
	var out Response
	if err := json.Unmarshal(r.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", r.Body.String(), err)
	}
	return out
}

// DecodeData unmarshals the envelope's data field into dst.
func (r *ResponseRecorder) DecodeData(t *testing.T, dst any) Response {
	t.Helper()
	out := r.Decode(t)
	if err := json.Unmarshal(out.Data, dst); err != nil {
		t.Fatalf("decode data %q: %v", string(out.Data), err)
	}
	return out
}

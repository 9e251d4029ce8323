package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOKCount_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := OKCount(rec, 2, []string{"a", "b"}); err != nil {
		t.Fatalf("OKCount: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["success"] != true {
		t.Errorf("success: got %v", body["success"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count: got %v", body["count"])
	}
	if _, ok := body["pagination"]; ok {
		t.Error("pagination should be omitted")
	}
}

func TestFail_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = Fail(rec, http.StatusNotFound, "nope")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d", rec.Code)
	}
	want := `{"success":false,"error":"nope"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body: got %s, want %s", got, want)
	}
}

func TestRead_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "fractional int", body: `{"rating":7.5}`, want: "invalid value for field rating"},
		{name: "string for int", body: `{"rating":"ten"}`, want: "invalid value for field rating"},
		{name: "array body", body: `[1,2]`, want: "request body must be a JSON object"},
		{name: "truncated", body: `{"rating":`, want: "malformed JSON"},
		{name: "syntax", body: `{"rating" 5}`, want: "malformed JSON at position "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				Rating *int `json:"rating"`
			}
			err := Read(httptest.NewRecorder(), req, &dst)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err.Error(), tt.want)
			}
			if strings.Contains(err.Error(), "struct") {
				t.Errorf("error leaks Go types: %q", err.Error())
			}
		})
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		empty   bool
	}{
		{name: "valid", body: `{"title":"x"}`},
		{name: "unknown fields allowed", body: `{"title":"x","user":"abc"}`},
		{name: "empty", body: ``, wantErr: true, empty: true},
		{name: "malformed", body: `{"title":`, wantErr: true},
		{name: "two objects", body: `{"title":"x"}{"title":"y"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				Title string `json:"title"`
			}
			err := Read(httptest.NewRecorder(), req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if tt.empty && !errors.Is(err, ErrEmptyBody) {
				t.Errorf("expected ErrEmptyBody, got %v", err)
			}
			if !tt.wantErr && dst.Title != "x" {
				t.Errorf("title: got %q", dst.Title)
			}
		})
	}
}

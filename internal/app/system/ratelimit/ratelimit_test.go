package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndReset(t *testing.T) {
	l := New(2, time.Minute)
	defer l.Close()

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("k") {
		t.Error("third request should be blocked")
	}
	if l.Remaining("k") != 0 {
		t.Errorf("Remaining = %d, want 0", l.Remaining("k"))
	}
	if !l.Allow("other") {
		t.Error("keys are independent")
	}

	l.Reset("k")
	if l.Remaining("k") != 2 {
		t.Errorf("Remaining after Reset = %d, want 2", l.Remaining("k"))
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be blocked")
	}
	now = now.Add(61 * time.Second)
	if !l.Allow("k") {
		t.Error("request after window should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded header ignored", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, remote: "9.9.9.9:1", want: "9.9.9.9"},
		{name: "real ip header ignored", headers: map[string]string{"X-Real-IP": " 5.6.7.8 "}, remote: "9.9.9.9:1", want: "9.9.9.9"},
		{name: "remote addr", remote: "9.9.9.9:1234", want: "9.9.9.9"},
		{name: "no port", remote: "9.9.9.9", want: "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	defer ll.Close()

	r := httptest.NewRequest("POST", "/api/v1/auth/login", nil)

	if ok, _ := ll.Check(r, "A@example.com"); !ok {
		t.Fatal("first attempt should pass")
	}
	if ok, _ := ll.Check(r, "a@example.com "); !ok {
		t.Fatal("second attempt should pass")
	}
	ok, reason := ll.Check(r, "a@example.com")
	if ok || reason == "" {
		t.Errorf("third attempt for same email should be blocked, got ok=%v reason=%q", ok, reason)
	}

	ll.ResetEmail("A@EXAMPLE.COM")
	if ok, _ := ll.Check(r, "a@example.com"); !ok {
		t.Error("attempt after ResetEmail should pass")
	}
}

func TestPerIP(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Close()

	h := PerIP(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rec.Code)
	}
}

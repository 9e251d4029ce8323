package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "simple", email: "john@gmail.com", want: true},
		{name: "dotted local", email: "mary.williams@devworks.io", want: true},
		{name: "plus tag", email: "publisher+camps@example.com", want: true},
		{name: "subdomain", email: "admin@mail.devcamper.io", want: true},
		{name: "surrounding space trimmed", email: "  kevin@example.com ", want: true},
		{name: "single label domain", email: "seed@localhost", want: true},

		{name: "empty", email: "", want: false},
		{name: "blank", email: "   ", want: false},
		{name: "no at", email: "john.example.com", want: false},
		{name: "no domain", email: "john@", want: false},
		{name: "no local", email: "@example.com", want: false},
		{name: "two ats", email: "john@doe@example.com", want: false},
		{name: "leading dot", email: ".john@example.com", want: false},
		{name: "trailing dot", email: "john.@example.com", want: false},
		{name: "double dot local", email: "john..doe@example.com", want: false},
		{name: "double dot domain", email: "john@example..com", want: false},
		{name: "underscore in domain", email: "john@dev_works.io", want: false},
		{name: "display name", email: "John Doe <john@example.com>", want: false},
		{name: "inner space", email: "john doe@example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidate_ReviewMessages(t *testing.T) {
	type reviewInput struct {
		Title  string `json:"title" label:"Title" validate:"required,max=100"`
		Rating *int   `json:"rating" label:"Rating" validate:"required,min=1,max=10"`
	}
	eleven, zero, five := 11, 0, 5

	tests := []struct {
		name string
		in   reviewInput
		want string
	}{
		{name: "valid", in: reviewInput{Title: "Great", Rating: &five}, want: ""},
		{name: "missing title", in: reviewInput{Rating: &five}, want: "Title is required."},
		{name: "missing rating", in: reviewInput{Title: "Great"}, want: "Rating is required."},
		{name: "rating too high", in: reviewInput{Title: "Great", Rating: &eleven}, want: "Rating must be at most 10."},
		{name: "rating too low", in: reviewInput{Title: "Great", Rating: &zero}, want: "Rating must be at least 1."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if got := res.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
			if (res.Err() != nil) != (tt.want != "") {
				t.Errorf("Err() = %v, want error %v", res.Err(), tt.want != "")
			}
		})
	}
}

func TestValidate_RoleOneOf(t *testing.T) {
	type registerInput struct {
		Role string `json:"role" label:"Role" validate:"omitempty,oneof=user publisher"`
	}

	if res := Validate(registerInput{Role: "publisher"}); res.HasErrors() {
		t.Errorf("publisher should be accepted: %s", res.All())
	}
	if res := Validate(registerInput{}); res.HasErrors() {
		t.Errorf("empty role should be accepted: %s", res.All())
	}
	res := Validate(registerInput{Role: "admin"})
	if got, want := res.First(), "Role must be one of: user, publisher."; got != want {
		t.Errorf("First() = %q, want %q", got, want)
	}
}

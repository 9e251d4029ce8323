// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a raw query-string value and preserves case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

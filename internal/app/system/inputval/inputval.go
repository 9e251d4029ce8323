// internal/app/system/inputval/inputval.go
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validate is the shared validator instance. It is safe for concurrent use
// and caches struct metadata, so it is built once.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Messages use the `label` tag, then the json name, then the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsValidObjectID(fl.Field().String())
	})
	return v
}

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects field errors from Validate.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Err returns the result as an error, or nil when there were no failures.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError wraps a Result so it can travel through error returns.
type ValidationError struct {
	Result *Result
}

func (e *ValidationError) Error() string { return e.Result.All() }

// Validate runs the struct's `validate` tags and translates failures into
// readable messages.
func Validate(s any) *Result {
	res := &Result{}
	err := validate.Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "objectid":
		return fmt.Sprintf("%s must be a valid ID.", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// IsValidObjectID reports whether s (trimmed) is a 24-character hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidEmail performs a structural check of a bare addr-spec. Display-name
// forms ("Name <a@b>") are rejected. Single-label domains are accepted.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.ContainsRune(local, '@') {
		return false
	}
	return validDotted(local, isLocalChar) && validDotted(domain, isDomainChar)
}

// validDotted rejects leading, trailing, and consecutive dots.
func validDotted(part string, ok func(rune) bool) bool {
	if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
		return false
	}
	for _, c := range part {
		if c != '.' && !ok(c) {
			return false
		}
	}
	return true
}

func isLocalChar(c rune) bool {
	return isAlnum(c) || strings.ContainsRune("!#$%&'*+/=?^_`{|}~-", c)
}

func isDomainChar(c rune) bool {
	return isAlnum(c) || c == '-'
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

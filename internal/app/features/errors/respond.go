// internal/app/features/errors/respond.go
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/inputval"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// codeDocumentValidation is MongoDB's "Document failed validation" code.
const codeDocumentValidation = 121

// ErrorLogger is the single place handlers hand their errors to. It maps
// an error to a status and message, logs server-side failures, and writes
// the JSON failure envelope.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Respond writes the failure response for err.
func (l *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(err)
	if status >= http.StatusInternalServerError {
		l.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	} else {
		l.Log.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("error", msg))
	}
	_ = httpjson.Fail(w, status, msg)
}

// Classify maps err to an HTTP status and a caller-safe message.
// Anything it does not recognize is a 500 with a generic message.
func Classify(err error) (int, string) {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}

	var verr *inputval.ValidationError
	if stderrors.As(err, &verr) {
		return http.StatusBadRequest, verr.Error()
	}

	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound, "Resource not found"
	case wafflemongo.IsDup(err):
		return http.StatusBadRequest, "Duplicate field value entered"
	case isDocumentValidation(err):
		return http.StatusBadRequest, "Document failed validation"
	}

	return http.StatusInternalServerError, "Server Error"
}

func isDocumentValidation(err error) bool {
	var we mongo.WriteException
	if stderrors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == codeDocumentValidation {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if stderrors.As(err, &ce) && ce.Code == codeDocumentValidation {
		return true
	}
	return strings.Contains(err.Error(), "Document failed validation")
}

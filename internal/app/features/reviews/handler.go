// internal/app/features/reviews/handler.go
package reviews

import (
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the review endpoints.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Errors *uierrors.ErrorLogger
}

// NewHandler constructs a reviews Handler. It is called from the bootstrap
// BuildHandler function once the DB and logger exist.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Errors: uierrors.NewErrorLogger(logger),
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.Errors.Respond(w, r, err)
}

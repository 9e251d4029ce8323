// internal/app/features/reviews/get.go
package reviews

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeReview handles GET /reviews/{id}: one review with its bootcamp
// expanded to {_id, name, description}.
func (h *Handler) ServeReview(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.fail(w, r, uierrors.NotFound("No review found with the id of %s", raw))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	review, err := reviewstore.New(h.DB).GetWithBootcamp(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.fail(w, r, uierrors.NotFound("No review found with the id of %s", raw))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_ = httpjson.OK(w, http.StatusOK, review)
}

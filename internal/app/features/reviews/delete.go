// internal/app/features/reviews/delete.go
package reviews

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/authz"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /reviews/{id}. Only the review's author or
// an admin may delete it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		h.fail(w, r, uierrors.Unauthorized("Not authorized to access this route"))
		return
	}

	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.fail(w, r, uierrors.NotFound("No review with the id of %s", raw))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := reviewstore.New(h.DB)
	existing, err := store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.fail(w, r, uierrors.NotFound("No review with the id of %s", raw))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !authz.CanModify(existing.UserID, userID, role) {
		h.fail(w, r, uierrors.Unauthorized("Not authorized to delete review"))
		return
	}

	if _, err := store.Delete(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Log.Info("review deleted",
		zap.String("review_id", id.Hex()),
		zap.String("by_user_id", userID.Hex()),
		zap.String("role", role))
	_ = httpjson.OK(w, http.StatusOK, struct{}{})
}

// internal/app/features/reviews/update.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/authz"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/inputval"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate handles PUT /reviews/{id}. Only the review's author or an
// admin may update it; bootcamp and user never change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in updateInput
	if err := httpjson.Read(w, r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
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
		h.fail(w, r, uierrors.Unauthorized("Not authorized to update review"))
		return
	}

	in.sanitize()
	if res := inputval.Validate(in); res.HasErrors() {
		h.fail(w, r, res.Err())
		return
	}

	updated, err := store.Update(ctx, id, in.patch())
	if err == mongo.ErrNoDocuments {
		h.fail(w, r, uierrors.NotFound("No review with the id of %s", raw))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_ = httpjson.OK(w, http.StatusOK, updated)
}

// internal/app/features/reviews/create.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	bootcampstore "github.com/dalemusser/devcamper/internal/app/store/bootcamps"
	reviewstore "github.com/dalemusser/devcamper/internal/app/store/reviews"
	"github.com/dalemusser/devcamper/internal/app/system/authz"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/inputval"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /bootcamps/{bootcampId}/reviews.
// The review's bootcamp comes from the path and its user from the
// authenticated actor; nothing is written when the bootcamp is missing.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		h.fail(w, r, uierrors.Unauthorized("Not authorized to access this route"))
		return
	}

	raw := chi.URLParam(r, "bootcampId")
	bootcampID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.fail(w, r, uierrors.NotFound("No bootcamp with the id of %s", raw))
		return
	}

	var in createInput
	if err := httpjson.Read(w, r, &in); err != nil {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := bootcampstore.New(h.DB).Exists(ctx, bootcampID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !exists {
		h.fail(w, r, uierrors.NotFound("No bootcamp with the id of %s", raw))
		return
	}

	in.sanitize()
	if res := inputval.Validate(in); res.HasErrors() {
		h.fail(w, r, res.Err())
		return
	}

	review, err := reviewstore.New(h.DB).Create(ctx, models.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     *in.Rating,
		BootcampID: bootcampID,
		UserID:     userID,
	})
	if errors.Is(err, reviewstore.ErrDuplicateReview) {
		h.fail(w, r, uierrors.BadRequest("You have already reviewed this bootcamp"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Log.Info("review created",
		zap.String("review_id", review.ID.Hex()),
		zap.String("bootcamp_id", bootcampID.Hex()),
		zap.String("user_id", userID.Hex()))
	_ = httpjson.OK(w, http.StatusCreated, review)
}

// internal/app/features/authapi/me.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/authz"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		h.fail(w, r, uierrors.Unauthorized("Not authorized to access this route"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.fail(w, r, uierrors.Unauthorized("Not authorized to access this route"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	_ = httpjson.OK(w, http.StatusOK, u)
}

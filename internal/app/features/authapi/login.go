// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/devcamper/internal/app/system/ratelimit"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Read(w, r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
		return
	}
	email := normalize.Email(in.Email)
	if email == "" || in.Password == "" {
		h.fail(w, r, uierrors.BadRequest("Please provide an email and password"))
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.String("email", email))
			h.fail(w, r, uierrors.TooManyRequests("%s", reason))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.fail(w, r, uierrors.Unauthorized("Invalid credentials"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !userstore.CheckPassword(u, in.Password) {
		h.Log.Info("login failed: wrong password", zap.String("user_id", u.ID.Hex()))
		h.fail(w, r, uierrors.Unauthorized("Invalid credentials"))
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	h.sendToken(w, r, u.ID, models.LoginMethodPassword)
}

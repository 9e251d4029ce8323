// internal/app/features/authapi/password.go
package authapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/inputval"
	"github.com/dalemusser/devcamper/internal/app/system/mailer"
	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /auth/forgotpassword                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleForgotPassword stores a hashed reset token and emails the raw one.
// If the email cannot be sent the token is cleared again.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotInput
	if err := httpjson.Read(w, r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.GetByEmail(ctx, normalize.Email(in.Email))
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.fail(w, r, uierrors.NotFound("There is no user with that email"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token := newResetToken()
	if err := users.SetResetToken(ctx, u.ID, hashToken(token), h.now().Add(ResetTokenTTL)); err != nil {
		h.fail(w, r, err)
		return
	}

	msg := mailer.BuildResetPasswordEmail(mailer.ResetPasswordEmailData{
		SiteName:  h.SiteName,
		ResetURL:  fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", h.baseURL(r), token),
		ExpiresIn: "10 minutes",
	})
	msg.To = u.Email

	if err := h.Mailer.Send(msg); err != nil {
		h.Log.Error("reset email failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		if cerr := users.ClearResetToken(ctx, u.ID); cerr != nil {
			h.Log.Error("clear reset token failed", zap.String("user_id", u.ID.Hex()), zap.Error(cerr))
		}
		h.fail(w, r, uierrors.New(http.StatusInternalServerError, "Email could not be sent"))
		return
	}

	h.Log.Info("reset email sent", zap.String("user_id", u.ID.Hex()))
	_ = httpjson.OK(w, http.StatusOK, "Email sent")
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /auth/resetpassword/{resettoken}                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleResetPassword sets a new password for the holder of a valid token
// and signs them in.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(chi.URLParam(r, "resettoken"))
	if token == "" {
		h.fail(w, r, uierrors.BadRequest("Invalid token"))
		return
	}

	var in resetInput
	if err := httpjson.Read(w, r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.GetByResetToken(ctx, hashToken(token), h.now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.fail(w, r, uierrors.BadRequest("Invalid token"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		h.fail(w, r, res.Err())
		return
	}

	if err := users.ResetPassword(ctx, u.ID, in.Password); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Log.Info("password reset", zap.String("user_id", u.ID.Hex()))
	h.sendToken(w, r, u.ID, models.LoginMethodReset)
}

func newResetToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// hashToken is the form a reset token is stored in.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (h *Handler) baseURL(r *http.Request) string {
	if h.BaseURL != "" {
		return strings.TrimRight(h.BaseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

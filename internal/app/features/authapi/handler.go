// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	loginstore "github.com/dalemusser/devcamper/internal/app/store/logins"
	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/app/system/mailer"
	"github.com/dalemusser/devcamper/internal/app/system/ratelimit"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ResetTokenTTL is how long an emailed reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

// Sender delivers one email. *mailer.Mailer satisfies it.
type Sender interface {
	Send(e mailer.Email) error
}

// Handler serves the /auth endpoints.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Errors     *uierrors.ErrorLogger
	SessionMgr *auth.SessionManager
	Mailer     Sender
	Limiter    *ratelimit.LoginLimiter
	Forgot     *ratelimit.Limiter // per-IP cap on reset emails; nil disables it
	BaseURL    string             // prefix for reset links; derived from the request when empty
	SiteName   string

	now func() time.Time
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	mail Sender,
	limiter *ratelimit.LoginLimiter,
	baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Errors:     uierrors.NewErrorLogger(logger),
		SessionMgr: sessionMgr,
		Mailer:     mail,
		Limiter:    limiter,
		BaseURL:    baseURL,
		SiteName:   "DevCamper",
		now:        time.Now,
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.Errors.Respond(w, r, err)
}

// sendToken records the issuance and writes the token response, falling
// back to a 500 when the token or cookie cannot be produced.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID, method string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := loginstore.New(h.DB).CreateFrom(ctx, r, userID, method); err != nil {
		h.Log.Warn("login record not saved", zap.String("user_id", userID.Hex()), zap.Error(err))
	}

	if err := h.SessionMgr.SendToken(w, r, http.StatusOK, userID.Hex()); err != nil {
		h.fail(w, r, err)
	}
}

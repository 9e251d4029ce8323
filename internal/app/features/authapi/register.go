// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/devcamper/internal/app/features/errors"
	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/inputval"
	"github.com/dalemusser/devcamper/internal/app/system/normalize"
	"github.com/dalemusser/devcamper/internal/app/system/timeouts"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister handles POST /auth/register. Self-registration may pick
// "user" or "publisher"; "admin" is rejected.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Read(w, r, &in); err != nil {
		h.fail(w, r, uierrors.BadRequest("%s", err.Error()))
		return
	}
	in.Name = normalize.Name(in.Name)
	in.Email = normalize.Email(in.Email)
	in.Role = normalize.Role(in.Role)

	if res := inputval.Validate(in); res.HasErrors() {
		h.fail(w, r, res.Err())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}, in.Password)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.fail(w, r, uierrors.BadRequest("Duplicate field value entered"))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role),
		zap.String("email_domain", emailDomain(u.Email)))
	h.sendToken(w, r, u.ID, models.LoginMethodRegister)
}

func emailDomain(email string) string {
	if _, domain, ok := strings.Cut(email, "@"); ok {
		return domain
	}
	return ""
}

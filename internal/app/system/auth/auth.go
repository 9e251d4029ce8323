package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the authenticated actor injected into r.Context().
type SessionUser struct {
	ID    string // user ObjectID as hex
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser puts u into the request context, bypassing token checks.
// Handler tests use it to simulate a signed-in caller.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// UserFetcher loads fresh user data for the ID carried by a token, so role
// changes and deletions take effect on the next request. It returns nil
// when the user does not exist.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*SessionUser, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

const tokenKey = "token"

// Config configures NewSessionManager.
type Config struct {
	SessionKey   string        // cookie signing key; generated when empty
	SessionName  string        // cookie name
	Domain       string        // cookie domain; blank means current host
	Secure       bool          // Secure + SameSite=None when true
	JWTSecret    string        // HS256 signing secret
	JWTExpire    time.Duration // token lifetime
	CookieMaxAge time.Duration // token cookie lifetime
}

// SessionManager issues tokens, carries them in a signed cookie, and
// guards routes.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	tokens  *Tokens
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager validates cfg and builds the cookie store and token issuer.
func NewSessionManager(cfg Config, logger *zap.Logger) (*SessionManager, error) {
	tokens, err := NewTokens(cfg.JWTSecret, cfg.JWTExpire)
	if err != nil {
		return nil, err
	}

	key := []byte(cfg.SessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("could not generate a session key")
		}
		logger.Warn("session key not configured; using a random key (token cookies will not survive restarts)")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	name := cfg.SessionName
	if name == "" {
		name = "devcamper-session"
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   cfg.Domain,
		Path:     "/",
		MaxAge:   int(cfg.CookieMaxAge / time.Second),
		Secure:   cfg.Secure,
		HttpOnly: true,
	}
	if cfg.Secure {
		store.Options.SameSite = http.SameSiteNoneMode
	} else {
		store.Options.SameSite = http.SameSiteLaxMode
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", cfg.Secure),
		zap.String("domain", cfg.Domain),
		zap.Duration("token_ttl", cfg.JWTExpire))

	return &SessionManager{store: store, name: name, tokens: tokens, log: logger}, nil
}

// SetUserFetcher sets the loader used by RequireSignedIn.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// Tokens exposes the token issuer.
func (sm *SessionManager) Tokens() *Tokens {
	return sm.tokens
}

// SendToken issues a token for userID, stores it in the session cookie,
// and writes {success: true, token}.
func (sm *SessionManager) SendToken(w http.ResponseWriter, r *http.Request, status int, userID string) error {
	tok, err := sm.tokens.Issue(userID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	sess, _ := sm.store.Get(r, sm.name) // a decode error yields a fresh session
	sess.Values[tokenKey] = tok
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return httpjson.Write(w, status, struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}{Success: true, Token: tok})
}

// tokenFrom prefers "Authorization: Bearer <token>" and falls back to the
// session cookie.
func (sm *SessionManager) tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return ""
	}
	tok, _ := sess.Values[tokenKey].(string)
	return tok
}

// RequireSignedIn verifies the caller's token, loads the user, and puts it
// in the request context. Requests that already carry a user (tests) pass
// straight through. Failures are 401 JSON responses.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		tok := sm.tokenFrom(r)
		if tok == "" {
			_ = httpjson.Fail(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		userID, err := sm.tokens.Verify(tok)
		if err != nil {
			sm.log.Debug("token rejected", zap.Error(err))
			_ = httpjson.Fail(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		if sm.fetcher == nil {
			sm.log.Error("RequireSignedIn used without a user fetcher")
			_ = httpjson.Fail(w, http.StatusInternalServerError, "Server Error")
			return
		}
		u, err := sm.fetcher.FetchUser(r.Context(), userID)
		if err != nil {
			sm.log.Error("fetch session user failed", zap.String("user_id", userID), zap.Error(err))
			_ = httpjson.Fail(w, http.StatusInternalServerError, "Server Error")
			return
		}
		if u == nil {
			_ = httpjson.Fail(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireRole rejects signed-in callers whose role is not listed (403).
// Use it after RequireSignedIn.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				_ = httpjson.Fail(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				_ = httpjson.Fail(w, http.StatusForbidden,
					fmt.Sprintf("User role %s is not authorized to access this route", u.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

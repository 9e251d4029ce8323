// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	authapifeature "github.com/dalemusser/devcamper/internal/app/features/authapi"
	healthfeature "github.com/dalemusser/devcamper/internal/app/features/health"
	reviewsfeature "github.com/dalemusser/devcamper/internal/app/features/reviews"
	userstore "github.com/dalemusser/devcamper/internal/app/store/users"
	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/app/system/httpjson"
	"github.com/dalemusser/devcamper/internal/app/system/mailer"
	"github.com/dalemusser/devcamper/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Limiters are built with the handler and stopped in Shutdown.
var (
	loginLimiter  *ratelimit.LoginLimiter
	forgotLimiter *ratelimit.Limiter
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The API is mounted under /api/v1 and
// /health sits at the root for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(auth.Config{
		SessionKey:   appCfg.SessionKey,
		SessionName:  appCfg.SessionName,
		Domain:       appCfg.SessionDomain,
		Secure:       secure,
		JWTSecret:    appCfg.JWTSecret,
		JWTExpire:    appCfg.JWTExpire,
		CookieMaxAge: appCfg.JWTCookieExpire,
	}, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Protected routes load the token's user fresh on every request so role
	// changes and deletions take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.DevCamperMongoDatabase))

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	loginLimiter = ratelimit.NewLoginLimiterWithConfig(
		appCfg.LoginRateIP, time.Minute,
		appCfg.LoginRateEmail, 5*time.Minute,
	)
	forgotLimiter = ratelimit.New(appCfg.ForgotRateIP, 15*time.Minute)

	r := chi.NewRouter()
	if appCfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = httpjson.Fail(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = httpjson.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.DevCamperMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	reviewsHandler := reviewsfeature.NewHandler(deps.DevCamperMongoDatabase, logger)
	authHandler := authapifeature.NewHandler(deps.DevCamperMongoDatabase, sessionMgr, mail, loginLimiter, appCfg.BaseURL, logger)
	authHandler.Forgot = forgotLimiter

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", authapifeature.Routes(authHandler, sessionMgr))
		api.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))
		api.Mount("/bootcamps/{bootcampId}/reviews", reviewsfeature.BootcampRoutes(reviewsHandler, sessionMgr))
	})

	return r, nil
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devJWTSecret  = "dev-only-jwt-secret-change-me"
)

// appConfigKeys defines the configuration keys for DevCamper.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: DEVCAMPER_MONGO_URI, DEVCAMPER_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "devcamper", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "devcamper-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// JWT
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HS256 token signing secret (required in production)"},
	{Name: "jwt_expire", Default: "720h", Desc: "Token lifetime (e.g., 720h)"},
	{Name: "jwt_cookie_expire", Default: "720h", Desc: "Token cookie lifetime"},

	// CORS
	{Name: "cors_allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated allowed CORS origins"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@devcamper.io", Desc: "From email address"},
	{Name: "mail_from_name", Default: "DevCamper", Desc: "From display name"},

	// Base URL for reset links
	{Name: "base_url", Default: "", Desc: "Base URL for password reset links (required in production; blank derives it from the request)"},

	// Login rate limiting
	{Name: "login_rate_ip", Default: 10, Desc: "Login attempts allowed per IP per minute"},
	{Name: "login_rate_email", Default: 5, Desc: "Login attempts allowed per email per 5 minutes"},
	{Name: "forgot_rate_ip", Default: 5, Desc: "Password reset emails allowed per IP per 15 minutes"},

	// Reverse proxy
	{Name: "trust_proxy", Default: false, Desc: "Take client IPs from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)"},

	// Background workers
	{Name: "reset_cleanup_interval", Default: "15m", Desc: "How often expired reset tokens are purged (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// DEVCAMPER_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DEVCAMPER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		JWTSecret:       appValues.String("jwt_secret"),
		JWTExpire:       appValues.Duration("jwt_expire", 30*24*time.Hour),
		JWTCookieExpire: appValues.Duration("jwt_cookie_expire", 30*24*time.Hour),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL: appValues.String("base_url"),

		LoginRateIP:    appValues.Int("login_rate_ip"),
		LoginRateEmail: appValues.Int("login_rate_email"),
		ForgotRateIP:   appValues.Int("forgot_rate_ip"),

		TrustProxy:           appValues.Bool("trust_proxy"),
		ResetCleanupInterval: appValues.Duration("reset_cleanup_interval", 15*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before any connection attempt. Production
// refuses to start with a missing or development JWT secret, or without a
// base_url.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must be set")
	}
	if appCfg.JWTExpire <= 0 {
		return fmt.Errorf("jwt_expire must be positive, got %v", appCfg.JWTExpire)
	}
	if appCfg.LoginRateIP <= 0 || appCfg.LoginRateEmail <= 0 || appCfg.ForgotRateIP <= 0 {
		return errors.New("login_rate_ip, login_rate_email and forgot_rate_ip must be positive")
	}
	if appCfg.BaseURL != "" {
		u, err := url.Parse(appCfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", appCfg.BaseURL)
		}
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTSecret == "" || appCfg.JWTSecret == devJWTSecret {
			return errors.New("jwt_secret must be set in production")
		}
		if appCfg.SessionKey == devSessionKey {
			return errors.New("session_key must be changed in production")
		}
		if appCfg.BaseURL == "" {
			return errors.New("base_url must be set in production")
		}
	} else if appCfg.JWTSecret == devJWTSecret {
		logger.Warn("using the development JWT secret")
	}

	return nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

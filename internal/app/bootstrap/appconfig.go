// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, and log level; everything specific to DevCamper lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Token cookie session
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name (default: devcamper-session)
	SessionDomain string // Cookie domain (blank means current host)

	// JWT
	JWTSecret       string        // HS256 signing secret
	JWTExpire       time.Duration // token lifetime
	JWTCookieExpire time.Duration // token cookie lifetime

	// CORS
	CORSAllowedOrigins []string

	// Email/SMTP configuration (password reset)
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL for reset links (e.g., "https://devcamper.io"); blank derives it from the request
	BaseURL string

	// Login rate limits
	LoginRateIP    int // attempts per IP per minute
	LoginRateEmail int // attempts per email per 5 minutes
	ForgotRateIP   int // reset emails per IP per 15 minutes

	// Trust X-Forwarded-For / X-Real-IP from a reverse proxy
	TrustProxy bool

	// Expired reset-token purge interval; zero disables the worker
	ResetCleanupInterval time.Duration
}

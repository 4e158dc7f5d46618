// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; ports, TLS, log level and
// the like stay in WAFFLE's CoreConfig.
type AppConfig struct {
	// Restaurant backend
	APIBaseURL      string        // resolved API_BASE (see ResolveAPIBaseURL)
	APITimeout      time.Duration // per backend request
	BreakerFailures int           // consecutive transport failures before the breaker opens
	BreakerCooldown time.Duration // how long the breaker stays open

	// Session cookie
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name (default: lordsadmin-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Sign-in throttling, per client IP
	LoginRatePerMinute int
	TrustProxyHeaders  bool // take the client IP from X-Forwarded-For / X-Real-IP

	// Optional MongoDB for audit events and login history.
	// Leave MongoURI blank to run without a database.
	MongoURI      string
	MongoDatabase string

	// Audit logging
	AuditLogAuth  string // 'all', 'db', 'log' or 'off'
	AuditLogAdmin string
}

// MongoEnabled reports whether a database was configured.
func (c AppConfig) MongoEnabled() bool {
	return c.MongoURI != ""
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// BuildAPIBaseURL is the backend address baked in at build time:
//
//	go build -ldflags "-X github.com/dalemusser/lordsadmin/internal/app/bootstrap.BuildAPIBaseURL=https://api.example.com"
//
// When set it wins over runtime configuration.
var BuildAPIBaseURL string

// defaultSessionKey ships in appConfigKeys for local runs only.
const defaultSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the admin panel.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: LORDSADMIN_API_BASE_URL, LORDSADMIN_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "", Desc: "Restaurant backend base URL (default http://localhost:5000)"},
	{Name: "api_timeout", Default: "10s", Desc: "Per-request timeout for backend calls"},
	{Name: "api_breaker_failures", Default: 5, Desc: "Consecutive transport failures before the circuit opens"},
	{Name: "api_breaker_cooldown", Default: "30s", Desc: "How long the circuit stays open before a trial request"},

	{Name: "session_key", Default: defaultSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "lordsadmin-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "168h", Desc: "Session cookie lifetime"},

	{Name: "login_rate_per_minute", Default: 10, Desc: "Sign-in attempts allowed per client IP per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Read the client IP from X-Forwarded-For / X-Real-IP (enable only behind your own proxy)"},

	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for audit events and login history (blank disables)"},
	{Name: "mongo_database", Default: "lords_admin", Desc: "MongoDB database name"},

	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// WAFFLE_* / LORDSADMIN_* environment variables and flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LORDSADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:      ResolveAPIBaseURL(BuildAPIBaseURL, appValues.String("api_base_url")),
		APITimeout:      appValues.Duration("api_timeout", 10*time.Second),
		BreakerFailures: appValues.Int("api_breaker_failures"),
		BreakerCooldown: appValues.Duration("api_breaker_cooldown", 30*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 7*24*time.Hour),

		LoginRatePerMinute: appValues.Int("login_rate_per_minute"),
		TrustProxyHeaders:  appValues.Bool("trust_proxy_headers"),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	logger.Info("backend address resolved",
		zap.String("api_base_url", appCfg.APIBaseURL),
		zap.Bool("build_time", strings.TrimSpace(BuildAPIBaseURL) != ""))

	return coreCfg, appCfg, nil
}

// ResolveAPIBaseURL picks the backend address: the build-time value, then
// the runtime value, then apiclient.DefaultBaseURL. Blank values are skipped
// and a trailing slash is dropped.
func ResolveAPIBaseURL(buildTime, runtime string) string {
	for _, v := range []string{buildTime, runtime} {
		if v = strings.TrimRight(strings.TrimSpace(v), "/"); v != "" {
			return v
		}
	}
	return apiclient.DefaultBaseURL
}

// ValidateConfig performs app-specific config validation.
//
// The backend address must be an absolute http(s) URL. A MongoDB URI is
// only checked when one is configured. Production refuses the built-in
// session key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if coreCfg.Env == "prod" && (appCfg.SessionKey == "" || appCfg.SessionKey == defaultSessionKey) {
		logger.Error("session_key is unset or the built-in default in production")
		return fmt.Errorf("session_key must be set to a private value when env=prod")
	}

	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		logger.Error("invalid backend URL", zap.String("api_base_url", appCfg.APIBaseURL))
		return fmt.Errorf("invalid api_base_url %q: want an absolute http(s) URL", appCfg.APIBaseURL)
	}

	if appCfg.MongoEnabled() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	for key, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch v {
		case "", "all", "db", "log", "off":
		default:
			return fmt.Errorf("%s must be one of all, db, log, off (got %q)", key, v)
		}
	}

	if appCfg.LoginRatePerMinute < 0 {
		return fmt.Errorf("login_rate_per_minute must not be negative")
	}
	return nil
}

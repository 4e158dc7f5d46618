// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	customersfeature "github.com/dalemusser/lordsadmin/internal/app/features/customers"
	dashboardfeature "github.com/dalemusser/lordsadmin/internal/app/features/dashboard"
	dishesfeature "github.com/dalemusser/lordsadmin/internal/app/features/dishes"
	errorsfeature "github.com/dalemusser/lordsadmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/lordsadmin/internal/app/features/health"
	loginfeature "github.com/dalemusser/lordsadmin/internal/app/features/login"
	logoutfeature "github.com/dalemusser/lordsadmin/internal/app/features/logout"
	ordersfeature "github.com/dalemusser/lordsadmin/internal/app/features/orders"
	tablesfeature "github.com/dalemusser/lordsadmin/internal/app/features/tables"
	"github.com/dalemusser/lordsadmin/internal/app/resources"
	auditstore "github.com/dalemusser/lordsadmin/internal/app/store/audit"
	loginstore "github.com/dalemusser/lordsadmin/internal/app/store/logins"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/authflow"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, connections, schema setup, and
// the Startup hook have completed.
//
// Every request first gets its own session Store, hydrated from the cookie
// before any route runs. /login, /health and /static are public; the
// dashboard and the resource views sit behind session.RequireSession.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	bridge, err := session.NewBridge(session.BridgeConfig{
		Key:    appCfg.SessionKey,
		Name:   appCfg.SessionName,
		Domain: appCfg.SessionDomain,
		MaxAge: appCfg.SessionMaxAge,
		Secure: secure,
	}, logger)
	if err != nil {
		logger.Error("session bridge init failed", zap.Error(err))
		return nil, err
	}
	msgs := flash.New(bridge.Cookies(), appCfg.SessionName, logger)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	resources.LoadSharedTemplates()
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	var (
		auditStore *auditstore.Store
		logins     *loginstore.Store
		activity   *dashboardfeature.Activity
	)
	if deps.MongoDatabase != nil {
		auditStore = auditstore.New(deps.MongoDatabase)
		logins = loginstore.New(deps.MongoDatabase)
		activity = &dashboardfeature.Activity{Logins: logins, Audit: auditStore}
	}
	audit := auditlog.New(auditStore, logins, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)

	// Only a proxy we run may set the client address.
	if appCfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}

	// Hydrate the per-request Store before anything else looks at it.
	r.Use(bridge.Middleware)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.API, deps.MongoClient, logger)))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(pages chi.Router) {
		pages.Use(csrfProtect(appCfg.SessionKey, secure, logger))

		auth := authflow.New(deps.API, logger)
		loginHandler := loginfeature.NewHandler(auth, bridge, msgs, audit, deps.LoginLimiter, errLog, logger)
		pages.Mount("/login", loginfeature.Routes(loginHandler))

		// Error pages
		pages.Get("/forbidden", errorsHandler.Forbidden)
		pages.Get("/unauthorized", errorsHandler.Unauthorized)

		pages.Group(func(pr chi.Router) {
			pr.Use(session.RequireSession)

			pr.Handle("/", dashboardfeature.Routes(dashboardfeature.NewHandler(deps.API, msgs, activity, logger)))
			pr.Mount("/dishes", dishesfeature.Routes(dishesfeature.NewHandler(deps.API, msgs, audit, errLog, logger)))
			pr.Mount("/orders", ordersfeature.Routes(ordersfeature.NewHandler(deps.API, msgs, audit, logger)))
			pr.Mount("/tables", tablesfeature.Routes(tablesfeature.NewHandler(deps.API, msgs, audit, logger)))
			pr.Mount("/customers", customersfeature.Routes(customersfeature.NewHandler(deps.API, msgs, logger)))
			pr.Mount("/logout", logoutfeature.Routes(logoutfeature.NewHandler(bridge, msgs, audit, logger)))
		})
	})

	return r, nil
}

// csrfProtect guards every form post. The token key is derived from the
// session key so one secret configures both. Outside prod the panel is
// served over plain HTTP, which gorilla/csrf has to be told per request.
func csrfProtect(sessionKey string, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("lordsadmin-csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r, "Your form expired. Reload the page and try again.", "")
		})),
	)
	return func(next http.Handler) http.Handler {
		guarded := protect(next)
		if secure {
			return guarded
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guarded.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

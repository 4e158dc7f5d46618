// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	loginstore "github.com/dalemusser/lordsadmin/internal/app/store/logins"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for menu, order and table changes.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to MongoDB (via audit.Store) when one is configured and to
// structured logs (via zap). Successful and failed sign-ins also land in
// the login history when a loginstore is configured.
type Logger struct {
	store  *audit.Store
	logins *loginstore.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store and logins may be nil when MongoDB
// is not configured; events then go to zap only.
func New(store *audit.Store, logins *loginstore.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		logins: logins,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Username != "" {
		fields = append(fields, zap.String("username", event.Username))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) recordLogin(ctx context.Context, r *http.Request, username string, success bool, reason string) {
	if l == nil || l.logins == nil || l.config.Auth == "off" {
		return
	}
	if err := l.logins.CreateFrom(ctx, r, username, success, reason); err != nil {
		l.zapLog.Error("failed to store login record", zap.Error(err), zap.String("username", username))
	}
}

func authEvent(r *http.Request, eventType, username string, success bool, reason string) audit.Event {
	return audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		Username:      username,
		IP:            loginstore.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       success,
		FailureReason: reason,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, username, attemptID string) {
	ev := authEvent(r, audit.EventLoginSuccess, username, true, "")
	ev.Details = map[string]string{"attempt_id": attemptID}
	l.Log(ctx, ev)
	l.recordLogin(ctx, r, username, true, "")
}

// LoginRejected logs credentials the backend refused.
func (l *Logger) LoginRejected(ctx context.Context, r *http.Request, username, attemptID, reason string) {
	ev := authEvent(r, audit.EventLoginFailedRejected, username, false, reason)
	ev.Details = map[string]string{"attempt_id": attemptID}
	l.Log(ctx, ev)
	l.recordLogin(ctx, r, username, false, reason)
}

// LoginBackendFailed logs a sign-in that could not reach the backend.
func (l *Logger) LoginBackendFailed(ctx context.Context, r *http.Request, username, attemptID string, err error) {
	ev := authEvent(r, audit.EventLoginFailedBackend, username, false, "backend unavailable")
	ev.Details = map[string]string{"attempt_id": attemptID}
	if err != nil {
		ev.Details["error"] = err.Error()
	}
	l.Log(ctx, ev)
}

// LoginRateLimited logs a sign-in refused before reaching the backend.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, authEvent(r, audit.EventLoginFailedRateLimit, username, false, "rate limited"))
}

// LoginDiscarded logs a backend answer that arrived after the session moved on.
func (l *Logger) LoginDiscarded(ctx context.Context, r *http.Request, username, attemptID string) {
	ev := authEvent(r, audit.EventLoginDiscardedStale, username, false, "stale response")
	ev.Details = map[string]string{"attempt_id": attemptID}
	l.Log(ctx, ev)
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, username string) {
	l.Log(ctx, authEvent(r, audit.EventLogout, username, true, ""))
}

// --- Admin Events ---

// AdminAction logs a successful change made through the panel.
func (l *Logger) AdminAction(ctx context.Context, r *http.Request, username, eventType string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Username:  username,
		IP:        loginstore.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// friendly page. HTMX variants answer with a bare status and an HX-Trigger
// so the page can show its own notice.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u := session.Current(r).User; u != nil {
		fs = append(fs, zap.String("username", u.Username()))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	render(w, r, http.StatusBadRequest, "Invalid request", userMsg, backURL)
}

// LogForbidden logs at warn level and renders a 403 page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, nil)...)
	RenderForbidden(w, r, userMsg, backURL)
}

// HTMXLogServerError logs at error level and answers 500 without a body.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, err)...)
	setTrigger(w, userMsg)
	w.WriteHeader(http.StatusInternalServerError)
}

// HTMXLogBadRequest logs at warn level and answers 400 without a body.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	setTrigger(w, userMsg)
	w.WriteHeader(http.StatusBadRequest)
}

func setTrigger(w http.ResponseWriter, userMsg string) {
	if userMsg == "" {
		return
	}
	b, err := json.Marshal(map[string]string{"showError": userMsg})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

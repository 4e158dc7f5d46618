// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

// MsgLoggedOut is flashed on the login page after signing out.
const MsgLoggedOut = "Logged out successfully"

type Handler struct {
	Bridge   *session.Bridge
	Flash    *flash.Messenger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(bridge *session.Bridge, msgs *flash.Messenger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Bridge:   bridge,
		Flash:    msgs,
		AuditLog: audit,
		Log:      logger,
	}
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	st := session.FromRequest(r)
	username := ""
	if u := st.Read().User; u != nil {
		username = u.Username()
	}

	st.Logout()
	if err := h.Bridge.Clear(w, r); err != nil {
		// The in-memory session is already gone; a stale cookie would only
		// be rejected or overwritten on the next sign-in.
		h.Log.Error("logout: clear session cookie", zap.Error(err))
	}

	h.AuditLog.Logout(r.Context(), r, username)
	h.Flash.Success(w, r, MsgLoggedOut)

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", session.LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/lordsadmin/internal/app/features/errors"
	loginstore "github.com/dalemusser/lordsadmin/internal/app/store/logins"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/authflow"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MsgTooManyAttempts is flashed when the per-IP login limit is hit.
const MsgTooManyAttempts = "Too many login attempts, please wait a minute and try again"

type Handler struct {
	Auth     *authflow.Service
	Bridge   *session.Bridge
	Flash    *flash.Messenger
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Limiter  ratelimit.RateLimiter // nil disables limiting
	Log      *zap.Logger
}

func NewHandler(auth *authflow.Service, bridge *session.Bridge, msgs *flash.Messenger, audit *auditlog.Logger, limiter ratelimit.RateLimiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     auth,
		Bridge:   bridge,
		Flash:    msgs,
		AuditLog: audit,
		ErrLog:   errLog,
		Limiter:  limiter,
		Log:      logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Username  string
	ReturnURL string
}

// ServeLogin renders the sign-in form. Signed-in visitors never get here;
// the route is wrapped in session.RedirectIfSignedIn.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(w, r, h.Flash, "Login", "/"),
		Username:  query.Get(r, "username"),
		ReturnURL: urlutil.SafeReturn(query.Get(r, "return"), "", ""),
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost signs the user in against the backend.
//
// Every outcome ends in a 303: back to the form with an error notice, or on
// to the app with "Login Successful". The notice travels in a flash cookie,
// so reloading the resulting page never re-submits the credentials.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}
	creds := authflow.Credentials{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	username := strings.TrimSpace(creds.Username)
	ret := urlutil.SafeReturn(r.PostForm.Get("return"), "", "")

	if h.Limiter != nil && !h.Limiter.Allow(r.Context(), loginstore.ClientIP(r)) {
		h.AuditLog.LoginRateLimited(r.Context(), r, username)
		h.Flash.Error(w, r, MsgTooManyAttempts)
		h.backToForm(w, r, username, ret)
		return
	}

	attemptID := uuid.NewString()
	st := session.FromRequest(r)

	sess, err := h.Auth.SignIn(r.Context(), st, creds)
	if err != nil {
		h.fail(w, r, username, attemptID, ret, err)
		return
	}

	if err := h.Bridge.Persist(w, r, sess.User, sess.Token); err != nil {
		h.Log.Error("persist session failed", zap.Error(err), zap.String("username", username))
		st.Logout()
		h.Flash.Error(w, r, authflow.MsgServerError)
		h.backToForm(w, r, username, ret)
		return
	}

	h.AuditLog.LoginSuccess(r.Context(), r, username, attemptID)
	h.Flash.Success(w, r, authflow.MsgLoginSuccessful)

	dest := ret
	if dest == "" {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, username, attemptID, ret string, err error) {
	var ve *authflow.ValidationError
	var ae *authflow.AuthenticationError
	var ne *authflow.NetworkError

	switch {
	case errors.Is(err, authflow.ErrStaleResponse):
		// No notice: whoever moved the session on owns the page now.
		h.AuditLog.LoginDiscarded(r.Context(), r, username, attemptID)
		if r.Context().Err() != nil {
			return
		}
		dest := session.LoginPath
		if session.FromRequest(r).State() == session.Authenticated {
			dest = "/"
		}
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	case errors.As(err, &ve):
		// Nothing left the process; no audit entry.
	case errors.As(err, &ae):
		h.AuditLog.LoginRejected(r.Context(), r, username, attemptID, ae.Message)
	case errors.As(err, &ne):
		h.AuditLog.LoginBackendFailed(r.Context(), r, username, attemptID, ne.Err)
	default:
		h.Log.Error("unexpected login error", zap.Error(err), zap.String("username", username))
	}

	h.Flash.Error(w, r, authflow.UserMessage(err))
	h.backToForm(w, r, username, ret)
}

// backToForm redirects to the form, keeping what the user typed in the
// username field. The password is never echoed.
func (h *Handler) backToForm(w http.ResponseWriter, r *http.Request, username, ret string) {
	dest := session.LoginPath
	q := url.Values{}
	if username != "" {
		q.Set("username", username)
	}
	if ret != "" {
		q.Set("return", ret)
	}
	if len(q) > 0 {
		dest += "?" + q.Encode()
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// internal/app/features/tables/handler.go
package tables

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/navigation"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

const (
	MsgCreated     = "Table created successfully"
	MsgDeleted     = "Table deleted successfully"
	MsgAvailable   = "Table marked as available"
	MsgReserved    = "Table marked as reserved"
	MsgFetchFailed = "Failed to fetch tables"
)

type Handler struct {
	API      *apiclient.Client
	Flash    *flash.Messenger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(api *apiclient.Client, msgs *flash.Messenger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Flash:    msgs,
		AuditLog: audit,
		Log:      logger,
	}
}

func (h *Handler) api(r *http.Request) *apiclient.Client {
	return h.API.WithToken(session.Current(r).Token)
}

func actor(r *http.Request) string {
	if u := session.Current(r).User; u != nil {
		return u.Username()
	}
	return ""
}

// done flashes msg (as an error when failed) and returns to the list.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, failed bool, msg string) {
	if failed {
		h.Flash.Error(w, r, msg)
	} else {
		h.Flash.Success(w, r, msg)
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.TablesBackURL), http.StatusSeeOther)
}

// internal/app/features/dishes/handler.go
package dishes

import (
	"net/http"

	uierrors "github.com/dalemusser/lordsadmin/internal/app/features/errors"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

// Notices, as the menu staff are used to seeing them.
const (
	MsgCreated = "Dish created"
	MsgUpdated = "Dish updated"
	MsgDeleted = "Dish deleted"
	MsgMissing = "Dish not found"
)

type Handler struct {
	API      *apiclient.Client
	Flash    *flash.Messenger
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(api *apiclient.Client, msgs *flash.Messenger, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Flash:    msgs,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// api returns the client authorized with the caller's token.
func (h *Handler) api(r *http.Request) *apiclient.Client {
	return h.API.WithToken(session.Current(r).Token)
}

func actor(r *http.Request) string {
	if u := session.Current(r).User; u != nil {
		return u.Username()
	}
	return ""
}

// internal/app/features/orders/handler.go
package orders

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

const (
	MsgFetchFailed   = "Failed to fetch orders"
	MsgStatusUpdated = "Order status updated successfully"
	MsgStatusFailed  = "Failed to update order status"
	MsgBadStatus     = "Unknown order status"
)

// Handler serves the order board.
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

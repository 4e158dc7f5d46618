// internal/app/features/orders/status.go
package orders

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/app/system/formutil"
	"github.com/dalemusser/lordsadmin/internal/app/system/limits"
	"github.com/dalemusser/lordsadmin/internal/app/system/navigation"
	"github.com/dalemusser/lordsadmin/internal/app/system/normalize"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleStatus handles POST /orders/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.OrdersBackURL)

	if err := formutil.ParseLimited(w, r, limits.MaxFormSize); err != nil {
		h.Flash.Error(w, r, MsgStatusFailed)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	status := normalize.Option(r.PostForm.Get("status"))
	if !models.ValidOption(status, models.OrderStatuses) {
		h.Log.Debug("order status rejected", zap.String("order_id", id), zap.String("status", status))
		h.Flash.Error(w, r, MsgBadStatus)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update order status")
	defer cancel()

	if err := h.api(r).UpdateOrderStatus(ctx, id, status); err != nil {
		h.Log.Warn("update order status failed", zap.Error(err), zap.String("order_id", id))
		h.Flash.Error(w, r, MsgStatusFailed)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventOrderStatusChanged,
		map[string]string{"order_id": id, "status": status})
	h.Flash.Success(w, r, MsgStatusUpdated)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

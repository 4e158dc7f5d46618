// internal/app/features/dishes/delete.go
package dishes

import (
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/navigation"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles POST /dishes/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.DishesBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete dish")
	defer cancel()

	if err := h.api(r).DeleteDish(ctx, id); err != nil {
		h.Log.Warn("delete dish failed", zap.Error(err), zap.String("dish_id", id))
		h.Flash.Error(w, r, apiclient.UserMessage(err, "Failed to delete dish", "Server error while deleting dish"))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventDishDeleted, map[string]string{"dish_id": id})
	h.Flash.Success(w, r, MsgDeleted)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

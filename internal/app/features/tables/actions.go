// internal/app/features/tables/actions.go
package tables

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/formutil"
	"github.com/dalemusser/lordsadmin/internal/app/system/inputval"
	"github.com/dalemusser/lordsadmin/internal/app/system/limits"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type tableForm struct {
	TableNo    int `validate:"min=1" label:"Table number"`
	SeatingCap int `validate:"min=1" label:"Seating capacity"`
}

// parseTableForm reads tableNo, seatingCap and isAvailable. A blank
// seatingCap means the default; a checkbox that was not sent means reserved.
func parseTableForm(r *http.Request) (models.TableInput, string) {
	atoi := func(key string, def int) (int, bool) {
		s := strings.TrimSpace(r.PostForm.Get(key))
		if s == "" {
			return def, true
		}
		n, err := strconv.Atoi(s)
		return n, err == nil
	}

	no, ok := atoi("tableNo", 0)
	if !ok {
		return models.TableInput{}, "Table number must be a whole number."
	}
	capacity, ok := atoi("seatingCap", models.DefaultSeatingCap)
	if !ok {
		return models.TableInput{}, "Seating capacity must be a whole number."
	}

	f := tableForm{TableNo: no, SeatingCap: capacity}
	if msg := inputval.Validate(f).First(); msg != "" {
		return models.TableInput{}, msg
	}

	avail := false
	if v := strings.TrimSpace(r.PostForm.Get("isAvailable")); v != "" {
		avail = v == "on" || v == "true" || v == "1"
	}
	return models.TableInput{TableNo: f.TableNo, SeatingCap: f.SeatingCap, IsAvailable: avail}, ""
}

// HandleCreate handles POST /tables.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseLimited(w, r, limits.MaxFormSize); err != nil {
		h.done(w, r, true, "Invalid form data.")
		return
	}
	in, msg := parseTableForm(r)
	if msg != "" {
		h.done(w, r, true, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create table")
	defer cancel()

	if err := h.api(r).CreateTable(ctx, in); err != nil {
		h.Log.Warn("create table failed", zap.Error(err), zap.Int("table_no", in.TableNo))
		h.done(w, r, true, apiclient.UserMessage(err,
			"Failed to create table", "Failed to create table. Please check the server."))
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventTableCreated, map[string]string{
		"table_no":    strconv.Itoa(in.TableNo),
		"seating_cap": strconv.Itoa(in.SeatingCap),
	})
	h.done(w, r, false, MsgCreated)
}

// HandleAvailability handles POST /tables/{id}/availability. The form
// carries the state to switch to in "available".
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := formutil.ParseLimited(w, r, limits.MaxFormSize); err != nil {
		h.done(w, r, true, "Invalid form data.")
		return
	}
	available, err := strconv.ParseBool(strings.TrimSpace(r.PostForm.Get("available")))
	if err != nil {
		h.done(w, r, true, "Failed to update table availability")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "set table availability")
	defer cancel()

	if err := h.api(r).SetTableAvailability(ctx, id, available); err != nil {
		h.Log.Warn("set table availability failed", zap.Error(err), zap.String("table_id", id))
		h.done(w, r, true, apiclient.UserMessage(err,
			"Failed to update table availability", "Failed to update availability. Please check the server."))
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventTableAvailability, map[string]string{
		"table_id":  id,
		"available": strconv.FormatBool(available),
	})
	if available {
		h.done(w, r, false, MsgAvailable)
	} else {
		h.done(w, r, false, MsgReserved)
	}
}

// HandleDelete handles POST /tables/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete table")
	defer cancel()

	if err := h.api(r).DeleteTable(ctx, id); err != nil {
		h.Log.Warn("delete table failed", zap.Error(err), zap.String("table_id", id))
		h.done(w, r, true, apiclient.UserMessage(err,
			"Failed to delete table", "Failed to delete table. Please check the server."))
		return
	}

	h.AuditLog.AdminAction(r.Context(), r, actor(r), audit.EventTableDeleted, map[string]string{"table_id": id})
	h.done(w, r, false, MsgDeleted)
}

// internal/app/features/tables/list.go
package tables

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type tableCard struct {
	ID            string
	TableNo       int
	SeatingCap    int
	Group         bool // more than one seat
	Available     bool
	StatusLabel   string
	ToggleTo      string // value posted to flip availability
	ReservedFrom  string
	ReservedUntil string
}

type listData struct {
	viewdata.BaseVM
	LoadError  string
	Tables     []tableCard
	DefaultCap int
}

func newTableCard(t models.Table) tableCard {
	c := tableCard{
		ID:          t.ID,
		TableNo:     t.TableNo,
		SeatingCap:  t.SeatingCap,
		Group:       t.SeatingCap > 1,
		Available:   t.IsAvailable,
		StatusLabel: "Reserved",
		ToggleTo:    strconv.FormatBool(!t.IsAvailable),
	}
	if t.IsAvailable {
		c.StatusLabel = "Available"
	}
	if t.Reserved() {
		c.ReservedFrom = viewdata.DateTime(t.Reservation.From)
		c.ReservedUntil = viewdata.DateTime(t.Reservation.To)
	}
	return c
}

// ServeList handles GET /tables.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list tables")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(w, r, h.Flash, "Tables", "/"),
		DefaultCap: models.DefaultSeatingCap,
	}

	tables, err := h.api(r).ListTables(ctx)
	if err != nil {
		h.Log.Warn("list tables failed", zap.Error(err))
		data.LoadError = apiclient.UserMessage(err, MsgFetchFailed,
			"Failed to connect to the server. Please verify the API URL and server status.")
	}
	for _, t := range tables {
		data.Tables = append(data.Tables, newTableCard(t))
	}

	templates.Render(w, r, "tables_list", data)
}

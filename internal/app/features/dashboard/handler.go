// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	dashboardviews "github.com/dalemusser/lordsadmin/internal/app/features/dashboard/views"
	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	API      *apiclient.Client
	Flash    *flash.Messenger
	Activity *Activity // nil without MongoDB
	Log      *zap.Logger
}

func NewHandler(api *apiclient.Client, msgs *flash.Messenger, activity *Activity, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Flash:    msgs,
		Activity: activity,
		Log:      logger,
	}
}

type rangeOption struct {
	Value  string
	Label  string
	Active bool
}

type dashboardData struct {
	viewdata.BaseVM

	Range     string
	RangeDays int
	Ranges    []rangeOption

	Cards []card
	Trend []trendRow
	Diet  []dietSlice

	// Unavailable is set when the backend could not be read; the page
	// still renders, with zero values.
	Unavailable bool

	Activity *activityView
}

// ServeDashboard handles GET /.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	rng := models.NormalizeRange(query.Get(r, "range"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard stats")
	defer cancel()

	api := h.API.WithToken(session.Current(r).Token)
	st, err := loadStats(ctx, api, rng)
	if err != nil {
		h.Log.Warn("dashboard stats unavailable", zap.Error(err), zap.String("range", rng))
	}

	actx, acancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "dashboard activity")
	defer acancel()
	activity := h.Activity.load(actx, h.Log)

	data := dashboardData{
		BaseVM:      viewdata.NewBaseVM(w, r, h.Flash, "Dashboard", "/"),
		Range:       rng,
		RangeDays:   rangeDays(rng),
		Ranges:      rangeOptions(rng),
		Cards:       summaryCards(st.summary),
		Trend:       trendRows(st.trend),
		Diet:        dietSlices(st.dietary),
		Unavailable: err != nil,
		Activity:    activity,
	}

	h.Log.Debug("dashboard served", zap.String("range", rng))

	templates.Render(w, r, dashboardviews.TemplateName, data)
}

func rangeDays(rng string) int {
	if rng == models.Range30d {
		return 30
	}
	return 7
}

func rangeOptions(active string) []rangeOption {
	return []rangeOption{
		{Value: models.Range7d, Label: "7d", Active: active == models.Range7d},
		{Value: models.Range30d, Label: "30d", Active: active == models.Range30d},
	}
}

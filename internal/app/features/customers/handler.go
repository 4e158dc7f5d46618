// internal/app/features/customers/handler.go
package customers

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/normalize"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	API   *apiclient.Client
	Flash *flash.Messenger
	Log   *zap.Logger
}

func NewHandler(api *apiclient.Client, msgs *flash.Messenger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Flash: msgs, Log: logger}
}

type column struct {
	Key    string
	Label  string
	Href   string
	Active bool
	Dir    string // set on the active column
}

type row struct {
	Name          string
	Email         string
	Address       string
	Visits        int
	LoyaltyPoints int
	Joined        string
}

type listData struct {
	viewdata.BaseVM
	LoadError string
	Query     string
	Columns   []column
	Rows      []row
}

var columns = []struct{ key, label string }{
	{"name", "Name"},
	{"email", "Email"},
	{"address", "Address"},
	{"visits", "Visits"},
	{"loyaltyPoints", "Loyalty Points"},
	{"createdAt", "Joined"},
}

// headerLinks builds the sortable column headers. Clicking the active
// column while it is ascending flips it to descending; any other click
// sorts ascending.
func headerLinks(q, sortKey, dir string) []column {
	out := make([]column, 0, len(columns))
	for _, c := range columns {
		next := "asc"
		active := c.key == sortKey
		if active && dir == "asc" {
			next = "desc"
		}
		v := url.Values{"sort": {c.key}, "dir": {next}}
		if q != "" {
			v.Set("q", q)
		}
		col := column{Key: c.key, Label: c.label, Href: "/customers?" + v.Encode(), Active: active}
		if active {
			col.Dir = dir
		}
		out = append(out, col)
	}
	return out
}

// ServeList handles GET /customers?q=&sort=&dir=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(query.Get(r, "q"))
	sortKey := SortKey(query.Get(r, "sort"))
	dir := normalize.Direction(query.Get(r, "dir"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list customers")
	defer cancel()

	data := listData{
		BaseVM:  viewdata.NewBaseVM(w, r, h.Flash, "Customers", "/"),
		Query:   q,
		Columns: headerLinks(q, sortKey, dir),
	}

	all, err := h.API.WithToken(session.Current(r).Token).ListCustomers(ctx)
	if err != nil {
		h.Log.Warn("list customers failed", zap.Error(err))
		data.LoadError = apiclient.UserMessage(err, "Could not fetch customers", "Server Error")
	}

	for _, c := range Sort(Filter(all, q), sortKey, dir) {
		addr := c.Address
		if addr == "" {
			addr = "N/A"
		}
		data.Rows = append(data.Rows, row{
			Name:          c.Name,
			Email:         c.Email,
			Address:       addr,
			Visits:        c.Visits,
			LoyaltyPoints: c.LoyaltyPoints,
			Joined:        viewdata.Date(c.CreatedAt),
		})
	}

	h.Log.Debug("customers listed", zap.Int("shown", len(data.Rows)), zap.Int("total", len(all)))
	templates.Render(w, r, "customers_list", data)
}

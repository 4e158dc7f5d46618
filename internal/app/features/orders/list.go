// internal/app/features/orders/list.go
package orders

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/lordsadmin/internal/app/system/timeouts"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type itemRow struct {
	Label string // "Paneer Tikka (x2)"
	Price string
}

type statusOption struct {
	Value    string
	Label    string
	Selected bool
}

type orderCard struct {
	ID            string
	ShortID       string
	CustomerName  string
	CustomerEmail string
	Status        string
	StatusLabel   string
	Total         string
	Payment       string
	Placed        string
	Items         []itemRow
	Options       []statusOption
}

type listData struct {
	viewdata.BaseVM
	LoadError string
	Orders    []orderCard
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newOrderCard(o models.Order) orderCard {
	c := orderCard{
		ID:            o.ID,
		ShortID:       o.ShortID(),
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		Status:        o.Status,
		StatusLabel:   titleCase(o.Status),
		Total:         viewdata.Money(o.TotalAmount),
		Payment:       o.PaymentLabel(),
		Placed:        viewdata.DateTime(o.CreatedAt),
	}
	for _, it := range o.Items {
		c.Items = append(c.Items, itemRow{
			Label: it.Name + " (x" + strconv.Itoa(it.Quantity) + ")",
			Price: viewdata.Money(it.Price),
		})
	}
	for _, s := range models.OrderStatuses {
		c.Options = append(c.Options, statusOption{Value: s, Label: titleCase(s), Selected: s == o.Status})
	}
	return c
}

// ServeList handles GET /orders. A failed fetch still renders the page,
// empty, with the failure shown inline.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list orders")
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, h.Flash, "Orders", "/")}

	orders, err := h.api(r).ListOrders(ctx)
	if err != nil {
		h.Log.Warn("list orders failed", zap.Error(err))
		data.LoadError = MsgFetchFailed
	}
	for _, o := range orders {
		data.Orders = append(data.Orders, newOrderCard(o))
	}

	templates.Render(w, r, "orders_list", data)
}

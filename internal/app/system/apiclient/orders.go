package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, call{op: "list orders", method: http.MethodGet, path: "/api/orders", out: &out}); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// UpdateOrderStatus moves an order to status. Status values are checked
// by the caller against models.OrderStatuses.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, call{
		op:     "update order status",
		method: http.MethodPatch,
		path:   idPath("/api/orders", id, "status"),
		in:     map[string]string{"status": status},
	})
}

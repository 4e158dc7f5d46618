package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
)

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out struct {
		Customers []models.Customer `json:"customers"`
	}
	if err := c.do(ctx, call{op: "list customers", method: http.MethodGet, path: "/api/customers", out: &out}); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
)

// Table endpoints sit behind a proxy that can answer with HTML error pages,
// so every table call insists on a JSON body.

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var out struct {
		Tables []models.Table `json:"tables"`
	}
	err := c.do(ctx, call{op: "list tables", method: http.MethodGet, path: "/api/tables", out: &out, strictJSON: true})
	if err != nil {
		return nil, err
	}
	return out.Tables, nil
}

func (c *Client) CreateTable(ctx context.Context, in models.TableInput) error {
	return c.do(ctx, call{op: "create table", method: http.MethodPost, path: "/api/tables", in: in, strictJSON: true})
}

func (c *Client) SetTableAvailability(ctx context.Context, id string, available bool) error {
	return c.do(ctx, call{
		op:         "set table availability",
		method:     http.MethodPatch,
		path:       idPath("/api/tables", id),
		in:         map[string]bool{"isAvailable": available},
		strictJSON: true,
	})
}

func (c *Client) DeleteTable(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete table", method: http.MethodDelete, path: idPath("/api/tables", id), strictJSON: true})
}

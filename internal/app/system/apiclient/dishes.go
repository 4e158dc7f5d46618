package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
)

// ListDishes returns the menu. The list endpoint is public on the backend
// but a token is sent when the Client carries one.
func (c *Client) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var out struct {
		Dishes []models.Dish `json:"dishes"`
	}
	if err := c.do(ctx, call{op: "list dishes", method: http.MethodGet, path: "/api/dish", out: &out}); err != nil {
		return nil, err
	}
	return out.Dishes, nil
}

// FindDish looks a dish up by id from the menu list. It returns nil, nil
// when no dish has that id.
func (c *Client) FindDish(ctx context.Context, id string) (*models.Dish, error) {
	dishes, err := c.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dishes {
		if dishes[i].ID == id {
			return &dishes[i], nil
		}
	}
	return nil, nil
}

func (c *Client) CreateDish(ctx context.Context, in models.DishInput) error {
	return c.do(ctx, call{op: "create dish", method: http.MethodPost, path: "/api/dish", in: in})
}

func (c *Client) UpdateDish(ctx context.Context, id string, in models.DishInput) error {
	return c.do(ctx, call{op: "update dish", method: http.MethodPut, path: idPath("/api/dish", id), in: in})
}

func (c *Client) DeleteDish(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete dish", method: http.MethodDelete, path: idPath("/api/dish", id)})
}

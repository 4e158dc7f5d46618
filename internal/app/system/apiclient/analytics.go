package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
)

const statsPrefix = "/api/analytics/stats"

func (c *Client) Summary(ctx context.Context) (models.SalesSummary, error) {
	var out models.SalesSummary
	err := c.do(ctx, call{op: "sales summary", method: http.MethodGet, path: statsPrefix + "/summary", out: &out})
	return out, err
}

// RevenueTrend returns daily revenue for rng ("7d" or "30d").
func (c *Client) RevenueTrend(ctx context.Context, rng string) ([]models.RevenuePoint, error) {
	var out []models.RevenuePoint
	err := c.do(ctx, call{
		op:     "revenue trend",
		method: http.MethodGet,
		path:   statsPrefix + "/revenue-trend",
		query:  url.Values{"range": {models.NormalizeRange(rng)}},
		out:    &out,
	})
	return out, err
}

func (c *Client) DietaryBreakdown(ctx context.Context) (models.DietaryBreakdown, error) {
	var out models.DietaryBreakdown
	err := c.do(ctx, call{op: "dietary breakdown", method: http.MethodGet, path: statsPrefix + "/dietary-breakdown", out: &out})
	return out, err
}

// internal/app/features/dashboard/stats.go
package dashboard

import (
	"context"
	"math"
	"strconv"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/viewdata"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

type stats struct {
	summary models.SalesSummary
	trend   []models.RevenuePoint
	dietary models.DietaryBreakdown
}

// loadStats fetches the three analytics blocks concurrently. If any of them
// fails the whole result is discarded and the zero value returned alongside
// the error, so the page never mixes fresh and missing numbers.
func loadStats(ctx context.Context, api *apiclient.Client, rng string) (stats, error) {
	var st stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := api.Summary(gctx)
		st.summary = s
		return err
	})
	g.Go(func() error {
		t, err := api.RevenueTrend(gctx, rng)
		st.trend = t
		return err
	})
	g.Go(func() error {
		d, err := api.DietaryBreakdown(gctx)
		st.dietary = d
		return err
	})

	if err := g.Wait(); err != nil {
		return stats{}, err
	}
	return st, nil
}

type card struct {
	Title    string
	Value    string
	Subtitle string
}

func summaryCards(s models.SalesSummary) []card {
	top := s.TopDish
	if top == "" {
		top = "N/A"
	}
	return []card{
		{Title: "Today's Sales", Value: viewdata.Money(s.TodaySales), Subtitle: "Total sales today"},
		{Title: "This Week", Value: viewdata.Money(s.WeekSales), Subtitle: "Last 7 days"},
		{Title: "This Month", Value: viewdata.Money(s.MonthSales), Subtitle: "Current month"},
		{Title: "Active Orders", Value: strconv.Itoa(s.ActiveOrders), Subtitle: "Pending / Preparing"},
		{Title: "Top Dish", Value: top, Subtitle: "Most ordered item"},
	}
}

type trendRow struct {
	Date    string
	Revenue string
	Pct     int // bar width relative to the best day
}

func trendRows(points []models.RevenuePoint) []trendRow {
	var peak float64
	for _, p := range points {
		peak = math.Max(peak, p.Revenue)
	}
	rows := make([]trendRow, 0, len(points))
	for _, p := range points {
		pct := 0
		if peak > 0 && p.Revenue > 0 {
			pct = int(math.Round(p.Revenue / peak * 100))
		}
		rows = append(rows, trendRow{Date: p.Date, Revenue: viewdata.Money(p.Revenue), Pct: pct})
	}
	return rows
}

type dietSlice struct {
	Name  string
	Color string
	Count int
	Pct   int
}

// dietSlices drops empty classes; an all-zero breakdown yields no slices
// and the template shows "No data".
func dietSlices(d models.DietaryBreakdown) []dietSlice {
	all := []dietSlice{
		{Name: "Veg", Color: "#16a34a", Count: d.Veg},
		{Name: "Non-Veg", Color: "#ef4444", Count: d.NonVeg},
		{Name: "Eggetarian", Color: "#f97316", Count: d.Eggetarian},
	}
	total := d.Total()
	out := make([]dietSlice, 0, len(all))
	for _, s := range all {
		if s.Count <= 0 {
			continue
		}
		s.Pct = int(math.Round(float64(s.Count) / float64(total) * 100))
		out = append(out, s)
	}
	return out
}

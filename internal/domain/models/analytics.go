// internal/domain/models/analytics.go
package models

// SalesSummary is the headline block on the dashboard.
type SalesSummary struct {
	TodaySales   float64 `json:"todaySales"`
	WeekSales    float64 `json:"weekSales"`
	MonthSales   float64 `json:"monthSales"`
	ActiveOrders int     `json:"activeOrders"`
	TopDish      string  `json:"topDish"`
}

// RevenuePoint is one day on the revenue trend.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// DietaryBreakdown counts dishes ordered per dietary class.
type DietaryBreakdown struct {
	Veg        int `json:"veg"`
	NonVeg     int `json:"nonVeg"`
	Eggetarian int `json:"eggetarian"`
}

// Total is the sum across classes.
func (d DietaryBreakdown) Total() int {
	return d.Veg + d.NonVeg + d.Eggetarian
}

// Revenue trend ranges.
const (
	Range7d  = "7d"
	Range30d = "30d"
)

// NormalizeRange maps anything other than 30d to the 7-day default.
func NormalizeRange(v string) string {
	if v == Range30d {
		return Range30d
	}
	return Range7d
}

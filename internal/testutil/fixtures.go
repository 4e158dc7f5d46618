package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var fixtureTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// SampleDishes returns a small menu covering every dietary class.
func SampleDishes() []models.Dish {
	return []models.Dish{
		{ID: "d1", Name: "Paneer Tikka", Description: "Char-grilled cottage cheese", Price: 240, Category: models.CategoryStarters, Dietory: models.DietVeg, PortionName: models.PortionFull},
		{ID: "d2", Name: "Chicken Biryani", Description: "Dum-cooked basmati", Price: 320, Category: models.CategoryMainCourse, Dietory: models.DietNonVeg, PortionName: models.PortionFull},
		{ID: "d3", Name: "Egg Roll", Description: "Kolkata street style", Price: 90, Category: models.CategorySnacks, Dietory: models.DietEggetarian, PortionName: models.PortionHalf},
	}
}

// SampleOrders returns orders in a mix of statuses.
func SampleOrders() []models.Order {
	return []models.Order{
		{
			ID:          "65f0c0ffee0000000000a1b2c3",
			Customer:    models.OrderCustomer{Name: "Asha Rao", Email: "asha@example.com"},
			Items:       []models.OrderItem{{Name: "Paneer Tikka", Quantity: 2, Price: 480}},
			TotalAmount: 480,
			PaymentMode: "cash",
			Status:      models.OrderPreparing,
			CreatedAt:   fixtureTime,
		},
		{
			ID:          "65f0c0ffee0000000000d4e5f6",
			Customer:    models.OrderCustomer{Name: "Vikram Sen", Email: "vikram@example.com"},
			Items:       []models.OrderItem{{Name: "Chicken Biryani", Quantity: 1, Price: 320}},
			TotalAmount: 320,
			PaymentMode: "upi",
			Status:      models.OrderReady,
			CreatedAt:   fixtureTime.Add(time.Hour),
		},
	}
}

// SampleTables returns one free and one reserved table.
func SampleTables() []models.Table {
	return []models.Table{
		{ID: "t1", TableNo: 1, SeatingCap: 2, IsAvailable: true},
		{ID: "t2", TableNo: 2, SeatingCap: 4, IsAvailable: false, Reservation: &models.Reservation{
			From: fixtureTime, To: fixtureTime.Add(2 * time.Hour),
		}},
	}
}

// SampleCustomers returns customers with distinct sort keys.
func SampleCustomers() []models.Customer {
	return []models.Customer{
		{ID: "c1", Name: "Meera Iyer", Email: "meera@example.com", Address: "12 Lake Road, Chennai", Visits: 4, LoyaltyPoints: 120, CreatedAt: fixtureTime},
		{ID: "c2", Name: "arjun Das", Email: "arjun@example.com", Visits: 11, LoyaltyPoints: 40, CreatedAt: fixtureTime.Add(-48 * time.Hour)},
		{ID: "c3", Name: "Zoya Khan", Email: "zoya@example.com", Address: "7 Park Street, Kolkata", Visits: 1, LoyaltyPoints: 300, CreatedAt: fixtureTime.Add(24 * time.Hour)},
	}
}

// SampleSummary returns dashboard headline figures.
func SampleSummary() models.SalesSummary {
	return models.SalesSummary{TodaySales: 1250, WeekSales: 8400, MonthSales: 31200, ActiveOrders: 3, TopDish: "Paneer Tikka"}
}

// SampleDietary returns a dietary breakdown.
func SampleDietary() models.DietaryBreakdown {
	return models.DietaryBreakdown{Veg: 12, NonVeg: 7, Eggetarian: 2}
}

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Credentials the fake backend accepts.
const (
	TestUsername = "admin"
	TestPassword = "secret"
)

// RecordedRequest is one request seen by the fake backend.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// FakeBackend is an in-memory stand-in for the restaurant API.
// Mutations change its state so a follow-up list reflects them.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	dishes    []models.Dish
	orders    []models.Order
	tables    []models.Table
	customers []models.Customer
	summary   models.SalesSummary
	dietary   models.DietaryBreakdown
	requests  []RecordedRequest
	overrides map[string]http.HandlerFunc
	nextID    int
}

// NewFakeBackend starts a fake backend seeded with the Sample* fixtures.
// It is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		dishes:    SampleDishes(),
		orders:    SampleOrders(),
		tables:    SampleTables(),
		customers: SampleCustomers(),
		summary:   SampleSummary(),
		dietary:   SampleDietary(),
		overrides: map[string]http.HandlerFunc{},
	}
	fb.Server = httptest.NewServer(fb.routes())
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL is the backend base address.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// Override replaces the handler for "METHOD /path" (chi pattern syntax is
// not applied; the literal request path is matched).
func (fb *FakeBackend) Override(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.overrides[method+" "+path] = h
}

// Requests returns a copy of what the backend has seen so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

// CountRequests counts requests matching method and path.
func (fb *FakeBackend) CountRequests(method, path string) int {
	n := 0
	for _, r := range fb.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Dishes returns the current menu.
func (fb *FakeBackend) Dishes() []models.Dish {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]models.Dish(nil), fb.dishes...)
}

// Orders returns the current orders.
func (fb *FakeBackend) Orders() []models.Order {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]models.Order(nil), fb.orders...)
}

// Tables returns the current tables.
func (fb *FakeBackend) Tables() []models.Table {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]models.Table(nil), fb.tables...)
}

func (fb *FakeBackend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(fb.record)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/auth/login", fb.login)
	r.Get("/api/dish", fb.listDishes)

	r.Group(func(pr chi.Router) {
		pr.Use(fb.requireToken)

		pr.Post("/api/dish", fb.createDish)
		pr.Put("/api/dish/{id}", fb.updateDish)
		pr.Delete("/api/dish/{id}", fb.deleteDish)

		pr.Get("/api/orders", fb.listOrders)
		pr.Patch("/api/orders/{id}/status", fb.updateOrderStatus)

		pr.Get("/api/tables", fb.listTables)
		pr.Post("/api/tables", fb.createTable)
		pr.Patch("/api/tables/{id}", fb.patchTable)
		pr.Delete("/api/tables/{id}", fb.deleteTable)

		pr.Get("/api/customers", fb.listCustomers)

		pr.Get("/api/analytics/stats/summary", fb.statsSummary)
		pr.Get("/api/analytics/stats/revenue-trend", fb.statsTrend)
		pr.Get("/api/analytics/stats/dietary-breakdown", fb.statsDietary)
	})
	return r
}

func (fb *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		h := fb.overrides[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		if h != nil {
			h(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fb *FakeBackend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+TestToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fb *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Bad request"})
		return
	}
	if in.Username != TestUsername || in.Password != TestPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": TestToken,
		"user":  map[string]any{"username": TestUsername, "role": "admin"},
	})
}

func (fb *FakeBackend) id(prefix string) string {
	fb.nextID++
	return fmt.Sprintf("%s%d", prefix, 100+fb.nextID)
}

func (fb *FakeBackend) listDishes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"dishes": fb.Dishes()})
}

func (fb *FakeBackend) createDish(w http.ResponseWriter, r *http.Request) {
	var in models.DishInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Dish name is required"})
		return
	}
	fb.mu.Lock()
	d := models.Dish{
		ID: fb.id("d"), Name: in.Name, Description: in.Description, Image: in.Image,
		Price: in.Price, Category: in.Category, Dietory: in.Dietary, PortionName: in.Quantity,
	}
	fb.dishes = append(fb.dishes, d)
	fb.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"dish": d})
}

func (fb *FakeBackend) updateDish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in models.DishInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Bad request"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.dishes {
		if fb.dishes[i].ID == id {
			fb.dishes[i] = models.Dish{
				ID: id, Name: in.Name, Description: in.Description, Image: in.Image,
				Price: in.Price, Category: in.Category, Dietory: in.Dietary, PortionName: in.Quantity,
			}
			writeJSON(w, http.StatusOK, map[string]any{"dish": fb.dishes[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Dish not found"})
}

func (fb *FakeBackend) deleteDish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.dishes {
		if fb.dishes[i].ID == id {
			fb.dishes = append(fb.dishes[:i], fb.dishes[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Dish deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Dish not found"})
}

func (fb *FakeBackend) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"orders": fb.Orders()})
}

func (fb *FakeBackend) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Status string `json:"status"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	if !models.ValidOption(in.Status, models.OrderStatuses) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid status"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.orders {
		if fb.orders[i].ID == id {
			fb.orders[i].Status = in.Status
			writeJSON(w, http.StatusOK, map[string]any{"order": fb.orders[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
}

func (fb *FakeBackend) listTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tables": fb.Tables()})
}

func (fb *FakeBackend) createTable(w http.ResponseWriter, r *http.Request) {
	var in models.TableInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.TableNo <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Table number is required"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, t := range fb.tables {
		if t.TableNo == in.TableNo {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Table already exists"})
			return
		}
	}
	t := models.Table{ID: fb.id("t"), TableNo: in.TableNo, SeatingCap: in.SeatingCap, IsAvailable: in.IsAvailable}
	fb.tables = append(fb.tables, t)
	writeJSON(w, http.StatusCreated, map[string]any{"table": t})
}

func (fb *FakeBackend) patchTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.IsAvailable == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "isAvailable is required"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.tables {
		if fb.tables[i].ID == id {
			fb.tables[i].IsAvailable = *in.IsAvailable
			writeJSON(w, http.StatusOK, map[string]any{"table": fb.tables[i]})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Table not found"})
}

func (fb *FakeBackend) deleteTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for i := range fb.tables {
		if fb.tables[i].ID == id {
			fb.tables = append(fb.tables[:i], fb.tables[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Table deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Table not found"})
}

func (fb *FakeBackend) listCustomers(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	out := append([]models.Customer(nil), fb.customers...)
	fb.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"customers": out})
}

func (fb *FakeBackend) statsSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fb.summary)
}

func (fb *FakeBackend) statsTrend(w http.ResponseWriter, r *http.Request) {
	days := 7
	if r.URL.Query().Get("range") == models.Range30d {
		days = 30
	}
	out := make([]models.RevenuePoint, days)
	for i := range out {
		out[i] = models.RevenuePoint{
			Date:    fixtureTime.AddDate(0, 0, i-days+1).Format("2006-01-02"),
			Revenue: float64(1000 + 50*i),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (fb *FakeBackend) statsDietary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fb.dietary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSON is exported for Override handlers.
func WriteJSON(w http.ResponseWriter, status int, v any) { writeJSON(w, status, v) }

package apiclient_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/lordsadmin/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, base string) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Config{
		BaseURL:         base,
		Timeout:         2 * time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := apiclient.New(apiclient.Config{BaseURL: "ftp://example.com"}, zap.NewNop())
	require.Error(t, err)

	_, err = apiclient.New(apiclient.Config{BaseURL: "not a url"}, zap.NewNop())
	require.Error(t, err)

	c, err := apiclient.New(apiclient.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, apiclient.DefaultBaseURL, c.BaseURL())

	c, err = apiclient.New(apiclient.Config{BaseURL: "https://api.example.com/"}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", c.BaseURL())
}

func TestLogin(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		res, err := c.Login(ctx, testutil.TestUsername, testutil.TestPassword)
		require.NoError(t, err)
		require.Equal(t, testutil.TestToken, res.Token)
		require.Equal(t, "admin", res.User["username"])
	})

	t.Run("rejected carries backend message", func(t *testing.T) {
		_, err := c.Login(ctx, testutil.TestUsername, "wrong")
		require.Error(t, err)
		require.True(t, apiclient.IsUnauthorized(err))
		require.Equal(t, "Invalid credentials", apiclient.MessageOr(err, "Login failed"))
	})

	t.Run("2xx without token", func(t *testing.T) {
		fb.Override(http.MethodPost, "/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"username": "admin"}})
		})
		defer fb.Override(http.MethodPost, "/api/auth/login", nil)

		_, err := c.Login(ctx, testutil.TestUsername, testutil.TestPassword)
		require.ErrorIs(t, err, apiclient.ErrUnexpectedContent)
	})
}

func TestWithToken_SendsBearer(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL())

	_, err := c.ListOrders(context.Background())
	require.True(t, apiclient.IsUnauthorized(err), "unauthenticated call should get 401, got %v", err)

	orders, err := c.WithToken(testutil.TestToken).ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	var sawBearer bool
	for _, r := range fb.Requests() {
		if r.Path == "/api/orders" && r.Auth == "Bearer "+testutil.TestToken {
			sawBearer = true
		}
	}
	require.True(t, sawBearer)
}

func TestWithToken_EmptyReturnsSameClient(t *testing.T) {
	c := newClient(t, "http://localhost:5000")
	require.Same(t, c, c.WithToken(""))
}

func TestDishes(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)
	ctx := context.Background()

	dishes, err := c.ListDishes(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 3)
	require.Equal(t, models.DietVeg, dishes[0].Diet())

	in := models.NewDishInput()
	in.Name = "Gulab Jamun"
	in.Price = 80
	in.Category = models.CategoryDessert
	require.NoError(t, c.CreateDish(ctx, in))
	require.Len(t, fb.Dishes(), 4)

	d, err := c.FindDish(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, d)
	upd := d.InputFrom()
	upd.Price = 260
	require.NoError(t, c.UpdateDish(ctx, "d1", upd))

	d, err = c.FindDish(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, 260.0, d.Price)

	require.NoError(t, c.DeleteDish(ctx, "d1"))
	d, err = c.FindDish(ctx, "d1")
	require.NoError(t, err)
	require.Nil(t, d)

	err = c.DeleteDish(ctx, "missing")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Dish not found", apiErr.Message)
}

func TestOrders_UpdateStatus(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)

	id := testutil.SampleOrders()[0].ID
	require.NoError(t, c.UpdateOrderStatus(context.Background(), id, models.OrderReady))
	require.Equal(t, models.OrderReady, fb.Orders()[0].Status)

	var found bool
	for _, r := range fb.Requests() {
		if r.Method == http.MethodPatch && r.Path == "/api/orders/"+id+"/status" {
			found = true
			require.JSONEq(t, `{"status":"ready"}`, r.Body)
		}
	}
	require.True(t, found)
}

func TestTables(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)
	ctx := context.Background()

	tables, err := c.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.True(t, tables[1].Reserved())

	require.NoError(t, c.CreateTable(ctx, models.TableInput{TableNo: 9, SeatingCap: models.DefaultSeatingCap, IsAvailable: true}))
	require.NoError(t, c.SetTableAvailability(ctx, "t1", false))
	require.False(t, fb.Tables()[0].IsAvailable)
	require.NoError(t, c.DeleteTable(ctx, "t1"))
	require.Len(t, fb.Tables(), 2)
}

func TestTables_NonJSONIsError(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)

	fb.Override(http.MethodGet, "/api/tables", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>proxy page</html>"))
	})

	_, err := c.ListTables(context.Background())
	require.ErrorIs(t, err, apiclient.ErrUnexpectedContent)
	require.True(t, strings.Contains(err.Error(), "text/html"))
}

func TestCustomers(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)

	customers, err := c.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 3)
	require.Equal(t, "Meera Iyer", customers[0].Name)
}

func TestAnalytics(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL()).WithToken(testutil.TestToken)
	ctx := context.Background()

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.SampleSummary(), sum)

	trend, err := c.RevenueTrend(ctx, "30d")
	require.NoError(t, err)
	require.Len(t, trend, 30)

	trend, err = c.RevenueTrend(ctx, "bogus")
	require.NoError(t, err)
	require.Len(t, trend, 7)

	diet, err := c.DietaryBreakdown(ctx)
	require.NoError(t, err)
	require.Equal(t, 21, diet.Total())
}

func TestNetworkError_AndBreaker(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	base := fb.URL()
	fb.Server.Close()

	c := newClient(t, base).WithToken(testutil.TestToken)
	ctx := context.Background()
	require.Equal(t, "closed", c.BreakerState())

	for i := 0; i < 3; i++ {
		err := c.DeleteTable(ctx, "t1")
		require.Error(t, err)
		require.True(t, apiclient.IsNetwork(err), "attempt %d: got %v", i, err)
	}
	// read straight after the failing call, with no wait for callbacks
	require.Equal(t, "open", c.BreakerState())

	err := c.Ping(ctx)
	require.True(t, apiclient.IsNetwork(err))
}

func TestHTTPErrorsDoNotTripBreaker(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb.URL())

	for i := 0; i < 5; i++ {
		_, err := c.ListOrders(context.Background())
		require.True(t, apiclient.IsUnauthorized(err))
	}
	require.Equal(t, "closed", c.BreakerState())
}

func TestMessageOr(t *testing.T) {
	require.Equal(t, "fallback", apiclient.MessageOr(errors.New("boom"), "fallback"))
	require.Equal(t, "fallback", apiclient.MessageOr(&apiclient.APIError{StatusCode: 500}, "fallback"))
	require.Equal(t, "Dish not found", apiclient.MessageOr(&apiclient.APIError{StatusCode: 404, Message: "Dish not found"}, "fallback"))
}

func TestUserMessage(t *testing.T) {
	const rejected, unreachable = "Failed to delete dish", "Server error while deleting dish"

	require.Equal(t, "Dish not found",
		apiclient.UserMessage(&apiclient.APIError{StatusCode: 404, Message: "Dish not found"}, rejected, unreachable))
	require.Equal(t, rejected,
		apiclient.UserMessage(fmt.Errorf("wrapped: %w", &apiclient.APIError{StatusCode: 500}), rejected, unreachable))
	require.Equal(t, unreachable,
		apiclient.UserMessage(&apiclient.NetworkError{Op: "delete dish", Err: errors.New("refused")}, rejected, unreachable))
	require.Equal(t, unreachable,
		apiclient.UserMessage(apiclient.ErrUnexpectedContent, rejected, unreachable))
}

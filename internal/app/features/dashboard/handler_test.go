package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/lordsadmin/internal/app/features/dashboard"
	"github.com/dalemusser/lordsadmin/internal/app/store/audit"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/lordsadmin/internal/testutil"
)

func newTestHandler(t *testing.T, activity *dashboard.Activity) (*dashboard.Handler, *testutil.Harness) {
	t.Helper()
	testutil.BootTemplates(t)
	hs := testutil.NewHarness(t)
	return dashboard.NewHandler(hs.API, hs.Flash, activity, hs.Log), hs
}

func serve(h *dashboard.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	dashboard.Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestNewHandler(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeDashboard_FetchesAllStatsWithToken(t *testing.T) {
	h, hs := newTestHandler(t, nil)

	serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))

	for _, path := range []string{
		"/api/analytics/stats/summary",
		"/api/analytics/stats/revenue-trend",
		"/api/analytics/stats/dietary-breakdown",
	} {
		if n := hs.Backend.CountRequests(http.MethodGet, path); n != 1 {
			t.Errorf("%s called %d times, want 1", path, n)
		}
	}
	for _, rr := range hs.Backend.Requests() {
		if rr.Auth != "Bearer "+testutil.TestToken {
			t.Errorf("%s sent Authorization %q", rr.Path, rr.Auth)
		}
	}
}

func TestServeDashboard_RendersSummary(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<h1>Dashboard</h1>",
		"Today&#39;s Sales",
		"₹1250",
		"₹8400",
		"₹31200",
		"Paneer Tikka",
		"Last 7 days",
		"Veg",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "could not be loaded") {
		t.Error("healthy backend rendered the unavailable notice")
	}
	if strings.Contains(body, "Recent Sign-ins") {
		t.Error("activity section rendered without stores")
	}
}

func TestServeDashboard_NormalizesRange(t *testing.T) {
	tests := []struct {
		query string
		want  string
		days  string
	}{
		{"", "range=7d", "Last 7 days"},
		{"?range=30d", "range=30d", "Last 30 days"},
		{"?range=90d", "range=7d", "Last 7 days"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h, hs := newTestHandler(t, nil)
			rec := serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/"+tt.query, testutil.AdminUser()))

			var got string
			for _, rr := range hs.Backend.Requests() {
				if rr.Path == "/api/analytics/stats/revenue-trend" {
					got = rr.Query
				}
			}
			if got != tt.want {
				t.Errorf("trend query = %q, want %q", got, tt.want)
			}
			if !strings.Contains(rec.Body.String(), tt.days) {
				t.Errorf("body missing %q", tt.days)
			}
		})
	}
}

func TestServeDashboard_BackendDownRendersZeroValues(t *testing.T) {
	h, hs := newTestHandler(t, nil)
	hs.Backend.Server.Close()

	rec := serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Dashboard data could not be loaded",
		"₹0",
		"N/A",
		"No revenue recorded for this range.",
		"No data",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

type fakeLogins struct {
	recs []models.LoginRecord
	err  error
}

func (f fakeLogins) Recent(_ context.Context, username string, limit int64) ([]models.LoginRecord, error) {
	return f.recs, f.err
}

type fakeAudit struct {
	failed  []audit.Event
	changes []audit.Event
	count   int64
	err     error

	gotSince  time.Time
	gotFilter []audit.QueryFilter
}

func (f *fakeAudit) Query(_ context.Context, filter audit.QueryFilter) ([]audit.Event, error) {
	f.gotFilter = append(f.gotFilter, filter)
	return f.changes, f.err
}

func (f *fakeAudit) CountByFilter(_ context.Context, filter audit.QueryFilter) (int64, error) {
	f.gotFilter = append(f.gotFilter, filter)
	return f.count, f.err
}

func (f *fakeAudit) GetFailedLogins(_ context.Context, since time.Time, limit int64) ([]audit.Event, error) {
	f.gotSince = since
	return f.failed, f.err
}

func TestServeDashboard_ActivitySection(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	trail := &fakeAudit{
		failed: []audit.Event{
			{Username: "mallory", Timestamp: now.Add(-time.Hour), IP: "203.0.113.9", EventType: audit.EventLoginFailedRejected},
		},
		changes: []audit.Event{
			{Username: "admin", Timestamp: now.Add(-2 * time.Hour), EventType: audit.EventTableCreated, Details: map[string]string{"table_no": "7"}},
			{Username: "admin", Timestamp: now.Add(-3 * time.Hour), EventType: audit.EventDishCreated, Details: map[string]string{"name": "Masala Dosa"}},
		},
		count: 4,
	}
	activity := &dashboard.Activity{
		Logins: fakeLogins{recs: []models.LoginRecord{
			{Username: "admin", CreatedAt: now.Add(-30 * time.Minute), Success: true},
		}},
		Audit: trail,
		Now:   func() time.Time { return now },
	}
	h, _ := newTestHandler(t, activity)

	rec := serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Recent Sign-ins",
		"14 Mar 2025, 17:30",
		"Failed Sign-ins",
		"mallory",
		"Rejected",
		"203.0.113.9",
		"Recent Changes",
		"4 in the last 24 hours",
		"Table created",
		"Table 7",
		"Masala Dosa",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Some activity could not be loaded") {
		t.Error("unexpected activity warning")
	}

	if want := now.Add(-24 * time.Hour); !trail.gotSince.Equal(want) {
		t.Errorf("failed logins since = %v, want %v", trail.gotSince, want)
	}
	for _, f := range trail.gotFilter {
		if f.Category != audit.CategoryAdmin {
			t.Errorf("audit filter category = %q, want %q", f.Category, audit.CategoryAdmin)
		}
	}
}

func TestServeDashboard_ActivityStoreErrorKeepsPage(t *testing.T) {
	activity := &dashboard.Activity{
		Logins: fakeLogins{err: errors.New("mongo down")},
		Audit:  &fakeAudit{err: errors.New("mongo down")},
	}
	h, _ := newTestHandler(t, activity)

	rec := serve(h, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.AdminUser()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Some activity could not be loaded") {
		t.Error("missing activity warning")
	}
	if !strings.Contains(body, "₹1250") {
		t.Error("sales figures should still render")
	}
}

package tables_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/lordsadmin/internal/app/features/tables"
	"github.com/dalemusser/lordsadmin/internal/app/system/auditlog"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setup(t *testing.T) (http.Handler, *testutil.Harness, *observer.ObservedLogs) {
	t.Helper()
	testutil.BootTemplates(t)
	hs := testutil.NewHarness(t)
	core, logs := observer.New(zapcore.InfoLevel)
	audit := auditlog.New(nil, nil, zap.New(core), auditlog.Config{})
	r := chi.NewRouter()
	r.Mount("/tables", tables.Routes(tables.NewHandler(hs.API, hs.Flash, audit, hs.Log)))
	return r, hs, logs
}

func serve(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, testutil.WithUser(req, testutil.AdminUser()))
	return rec
}

func post(srv http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	return serve(srv, testutil.NewFormRequest(http.MethodPost, target, form))
}

func assertBack(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/tables" {
		t.Fatalf("got %d %q, want 303 to /tables", rec.Code, rec.Header().Get("Location"))
	}
}

func TestServeList(t *testing.T) {
	srv, hs, _ := setup(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/tables", nil))

	if n := hs.Backend.CountRequests(http.MethodGet, "/api/tables"); n != 1 {
		t.Errorf("list called %d times, want 1", n)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<h1>Tables</h1>",
		"Table 1",
		"Table 2",
		"Available",
		"Reserved from: 14 Mar 2025, 12:00 to 14 Mar 2025, 14:00",
		`action="/tables/t2/delete"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestServeList_BackendDownShowsInlineError(t *testing.T) {
	srv, hs, _ := setup(t)
	hs.Backend.Server.Close()

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/tables", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Failed to connect to the server. Please verify the API URL and server status.") {
		t.Error("missing inline load error")
	}
	if strings.Contains(body, "No tables found") {
		t.Error("empty-state text shown alongside the load error")
	}
}

func TestCreate(t *testing.T) {
	srv, hs, logs := setup(t)

	rec := post(srv, "/tables", url.Values{"tableNo": {"7"}, "isAvailable": {"true"}})

	assertBack(t, rec)
	if got := hs.FlashText(rec, flash.Success); got != tables.MsgCreated {
		t.Errorf("flash = %q, want %q", got, tables.MsgCreated)
	}
	all := hs.Backend.Tables()
	last := all[len(all)-1]
	if last.TableNo != 7 || last.SeatingCap != 2 || !last.IsAvailable {
		t.Errorf("created table = %+v, want no 7, default capacity, available", last)
	}
	if logs.FilterField(zap.String("event_type", "table_created")).Len() != 1 {
		t.Error("create was not audited")
	}
}

func TestCreate_UncheckedMeansReserved(t *testing.T) {
	srv, hs, _ := setup(t)
	post(srv, "/tables", url.Values{"tableNo": {"8"}, "seatingCap": {"6"}})

	all := hs.Backend.Tables()
	last := all[len(all)-1]
	if last.IsAvailable || last.SeatingCap != 6 {
		t.Errorf("created table = %+v", last)
	}
}

func TestCreate_InvalidNeverReachesBackend(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing number", url.Values{}, "Table number must be at least 1."},
		{"zero capacity", url.Values{"tableNo": {"3"}, "seatingCap": {"0"}}, "Seating capacity must be at least 1."},
		{"not a number", url.Values{"tableNo": {"three"}}, "Table number must be a whole number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hs, _ := setup(t)
			rec := post(srv, "/tables", tt.form)

			assertBack(t, rec)
			if got := hs.FlashText(rec, flash.Error); got != tt.want {
				t.Errorf("flash = %q, want %q", got, tt.want)
			}
			if n := hs.Backend.CountRequests(http.MethodPost, "/api/tables"); n != 0 {
				t.Errorf("backend POST count = %d, want 0", n)
			}
		})
	}
}

func TestCreate_DuplicateShowsServerMessage(t *testing.T) {
	srv, hs, _ := setup(t)
	rec := post(srv, "/tables", url.Values{"tableNo": {"1"}})

	if got := hs.FlashText(rec, flash.Error); got != "Table already exists" {
		t.Errorf("flash = %q, want server message", got)
	}
}

func TestAvailability(t *testing.T) {
	t.Run("reserve", func(t *testing.T) {
		srv, hs, _ := setup(t)
		rec := post(srv, "/tables/t1/availability", url.Values{"available": {"false"}})

		assertBack(t, rec)
		if got := hs.FlashText(rec, flash.Success); got != tables.MsgReserved {
			t.Errorf("flash = %q, want %q", got, tables.MsgReserved)
		}
		if hs.Backend.Tables()[0].IsAvailable {
			t.Error("t1 still available")
		}
	})

	t.Run("free", func(t *testing.T) {
		srv, hs, _ := setup(t)
		rec := post(srv, "/tables/t2/availability", url.Values{"available": {"true"}})

		if got := hs.FlashText(rec, flash.Success); got != tables.MsgAvailable {
			t.Errorf("flash = %q, want %q", got, tables.MsgAvailable)
		}
	})

	t.Run("garbage value", func(t *testing.T) {
		srv, hs, _ := setup(t)
		post(srv, "/tables/t1/availability", url.Values{"available": {"maybe"}})

		if n := hs.Backend.CountRequests(http.MethodPatch, "/api/tables/t1"); n != 0 {
			t.Errorf("backend PATCH count = %d, want 0", n)
		}
	})

	t.Run("non-json error", func(t *testing.T) {
		srv, hs, _ := setup(t)
		hs.Backend.Override(http.MethodPatch, "/api/tables/t1", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})
		rec := post(srv, "/tables/t1/availability", url.Values{"available": {"false"}})

		if got := hs.FlashText(rec, flash.Error); got != "Failed to update availability. Please check the server." {
			t.Errorf("flash = %q", got)
		}
	})
}

func TestDelete(t *testing.T) {
	srv, hs, logs := setup(t)
	rec := post(srv, "/tables/t2/delete", nil)

	assertBack(t, rec)
	if got := hs.FlashText(rec, flash.Success); got != tables.MsgDeleted {
		t.Errorf("flash = %q, want %q", got, tables.MsgDeleted)
	}
	if len(hs.Backend.Tables()) != 1 {
		t.Errorf("tables left = %d, want 1", len(hs.Backend.Tables()))
	}
	if logs.FilterField(zap.String("event_type", "table_deleted")).Len() != 1 {
		t.Error("delete was not audited")
	}

	rec = post(srv, "/tables/t2/delete", nil)
	if got := hs.FlashText(rec, flash.Error); got != "Table not found" {
		t.Errorf("second delete flash = %q, want server message", got)
	}
}

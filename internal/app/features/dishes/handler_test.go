package dishes_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/lordsadmin/internal/app/features/errors"
	"github.com/dalemusser/lordsadmin/internal/app/features/dishes"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) (http.Handler, *testutil.Harness) {
	t.Helper()
	testutil.BootTemplates(t)
	hs := testutil.NewHarness(t)
	h := dishes.NewHandler(hs.API, hs.Flash, nil, uierrors.NewErrorLogger(hs.Log), hs.Log)
	r := chi.NewRouter()
	r.Mount("/dishes", dishes.Routes(h))
	return r, hs
}

// do serves req as the admin user.
func do(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, testutil.WithUser(req, testutil.AdminUser()))
	return rec
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("body missing %q", w)
		}
	}
}

func validForm() url.Values {
	return url.Values{
		"name":        {"  Masala   Dosa "},
		"description": {"Crisp rice crepe"},
		"price":       {"120"},
		"category":    {"Starters"},
		"dietary":     {"veg"},
		"quantity":    {"full"},
	}
}

func TestNewHandler(t *testing.T) {
	hs := testutil.NewHarness(t)
	if dishes.NewHandler(hs.API, hs.Flash, nil, nil, hs.Log) == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeList_FetchesDishes(t *testing.T) {
	srv, hs := newTestRouter(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/dishes", nil))

	if n := hs.Backend.CountRequests(http.MethodGet, "/api/dish"); n != 1 {
		t.Errorf("list called %d times, want 1", n)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	assertBody(t, rec, "<h1>Dishes</h1>", "Paneer Tikka", "Chicken Biryani", "Egg Roll", "₹240", `action="/dishes/d1/delete"`)
}

func TestCreate_Success(t *testing.T) {
	srv, hs := newTestRouter(t)
	before := len(hs.Backend.Dishes())

	rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes", validForm()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dishes" {
		t.Errorf("Location = %q, want /dishes", loc)
	}
	if got := hs.FlashText(rec, flash.Success); got != dishes.MsgCreated {
		t.Errorf("flash = %q, want %q", got, dishes.MsgCreated)
	}

	all := hs.Backend.Dishes()
	if len(all) != before+1 {
		t.Fatalf("backend has %d dishes, want %d", len(all), before+1)
	}
	created := all[len(all)-1]
	if created.Name != "Masala Dosa" || created.Category != "starters" || created.Price != 120 {
		t.Errorf("created dish = %+v", created)
	}
	for _, rr := range hs.Backend.Requests() {
		if rr.Method == http.MethodPost && rr.Auth != "Bearer "+testutil.TestToken {
			t.Errorf("create sent Authorization %q", rr.Auth)
		}
	}
}

func TestCreate_InvalidNeverReachesBackend(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(url.Values)
		shows string
	}{
		{"missing name", func(v url.Values) { v.Set("name", "   ") }, ""},
		{"zero price", func(v url.Values) { v.Set("price", "0") }, ""},
		{"price not a number", func(v url.Values) { v.Set("price", "cheap") }, "Price must be a number."},
		{"unknown dietary", func(v url.Values) { v.Set("dietary", "vegan") }, ""},
		{"unknown category", func(v url.Values) { v.Set("category", "brunch") }, ""},
		{"unknown quantity", func(v url.Values) { v.Set("quantity", "double") }, ""},
		{"bad image url", func(v url.Values) { v.Set("image", "javascript:alert(1)") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hs := newTestRouter(t)
			form := validForm()
			tt.tweak(form)

			rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes", form))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d; invalid form must re-render, not redirect", rec.Code)
			}
			assertBody(t, rec, "<h1>Add Dish</h1>", `class="notice notice-error"`)
			if tt.shows != "" {
				assertBody(t, rec, tt.shows)
			}
			if n := hs.Backend.CountRequests(http.MethodPost, "/api/dish"); n != 0 {
				t.Errorf("backend saw %d creates, want 0", n)
			}
		})
	}
}

func TestCreate_BackendRejects(t *testing.T) {
	srv, hs := newTestRouter(t)
	hs.Backend.Override(http.MethodPost, "/api/dish", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusConflict, map[string]string{"message": "Dish already exists"})
	})

	rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes", validForm()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; rejected create must re-render the form", rec.Code)
	}
	assertBody(t, rec, "Dish already exists", `value="Masala Dosa"`)
	if hs.FlashText(rec, flash.Success) != "" {
		t.Error("no success notice expected")
	}
}

func TestCreate_ReturnURL(t *testing.T) {
	tests := []struct {
		ret  string
		want string
	}{
		{"/dishes?category=snacks", "/dishes?category=snacks"},
		{"/dishes/new", "/dishes"},
		{"/orders", "/dishes"},
		{"https://evil.example", "/dishes"},
	}
	for _, tt := range tests {
		t.Run(tt.ret, func(t *testing.T) {
			srv, _ := newTestRouter(t)
			form := validForm()
			form.Set("return", tt.ret)
			rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes", form))
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestUpdate_Success(t *testing.T) {
	srv, hs := newTestRouter(t)
	form := validForm()
	form.Set("name", "Paneer Tikka Special")

	rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes/d1", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := hs.FlashText(rec, flash.Success); got != dishes.MsgUpdated {
		t.Errorf("flash = %q, want %q", got, dishes.MsgUpdated)
	}
	if n := hs.Backend.CountRequests(http.MethodPut, "/api/dish/d1"); n != 1 {
		t.Errorf("PUT called %d times, want 1", n)
	}
	for _, d := range hs.Backend.Dishes() {
		if d.ID == "d1" && d.Name != "Paneer Tikka Special" {
			t.Errorf("d1 name = %q", d.Name)
		}
	}
}

func TestUpdate_UnknownDishRerenders(t *testing.T) {
	srv, hs := newTestRouter(t)
	rec := do(srv, testutil.NewFormRequest(http.MethodPost, "/dishes/nope", validForm()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; failed update must re-render the form", rec.Code)
	}
	assertBody(t, rec, "<h1>Edit Dish</h1>", `action="/dishes/nope"`)
	if n := hs.Backend.CountRequests(http.MethodPut, "/api/dish/nope"); n != 1 {
		t.Errorf("PUT called %d times, want 1", n)
	}
}

func TestEdit_MissingDishRedirects(t *testing.T) {
	srv, hs := newTestRouter(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/dishes/nope/edit", nil))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dishes" {
		t.Fatalf("got %d %q, want 303 to /dishes", rec.Code, rec.Header().Get("Location"))
	}
	if got := hs.FlashText(rec, flash.Error); got != dishes.MsgMissing {
		t.Errorf("flash = %q, want %q", got, dishes.MsgMissing)
	}
}

func TestEdit_KnownDishRenders(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/dishes/d1/edit", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; known dish should render the edit form", rec.Code)
	}
	assertBody(t, rec, "<h1>Edit Dish</h1>", `value="Paneer Tikka"`, `value="240"`, `action="/dishes/d1"`)
}

func TestDelete(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		srv, hs := newTestRouter(t)
		rec := do(srv, httptest.NewRequest(http.MethodPost, "/dishes/d2/delete", nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rec.Code)
		}
		if got := hs.FlashText(rec, flash.Success); got != dishes.MsgDeleted {
			t.Errorf("flash = %q, want %q", got, dishes.MsgDeleted)
		}
		for _, d := range hs.Backend.Dishes() {
			if d.ID == "d2" {
				t.Error("d2 still present")
			}
		}
	})

	t.Run("missing", func(t *testing.T) {
		srv, hs := newTestRouter(t)
		rec := do(srv, httptest.NewRequest(http.MethodPost, "/dishes/nope/delete", nil))
		if got := hs.FlashText(rec, flash.Error); got != "Dish not found" {
			t.Errorf("flash = %q, want backend message", got)
		}
	})

	t.Run("backend down", func(t *testing.T) {
		srv, hs := newTestRouter(t)
		hs.Backend.Server.Close()
		rec := do(srv, httptest.NewRequest(http.MethodPost, "/dishes/d1/delete", nil))
		if got := hs.FlashText(rec, flash.Error); got != "Server error while deleting dish" {
			t.Errorf("flash = %q", got)
		}
	})
}

package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"github.com/dalemusser/lordsadmin/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestResolveAPIBaseURL(t *testing.T) {
	tests := []struct {
		name           string
		build, runtime string
		want           string
	}{
		{"build time wins", "https://build.example", "https://runtime.example", "https://build.example"},
		{"runtime next", "", "https://runtime.example/", "https://runtime.example"},
		{"blank build ignored", "   ", "http://10.0.0.5:5000", "http://10.0.0.5:5000"},
		{"fallback", "", "", apiclient.DefaultBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAPIBaseURL(tt.build, tt.runtime); got != tt.want {
				t.Errorf("ResolveAPIBaseURL(%q, %q) = %q, want %q", tt.build, tt.runtime, got, tt.want)
			}
		})
	}
}

func validConfig() AppConfig {
	return AppConfig{
		APIBaseURL:    "http://localhost:5000",
		SessionKey:    testutil.SessionKey,
		SessionName:   testutil.SessionName,
		AuditLogAuth:  "all",
		AuditLogAdmin: "log",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"relative api url", func(c *AppConfig) { c.APIBaseURL = "/api" }, true},
		{"ftp api url", func(c *AppConfig) { c.APIBaseURL = "ftp://files.example" }, true},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "not-a-uri" }, true},
		{"no mongo is fine", func(c *AppConfig) { c.MongoURI = "" }, false},
		{"unknown audit mode", func(c *AppConfig) { c.AuditLogAdmin = "sometimes" }, true},
		{"negative rate", func(c *AppConfig) { c.LoginRatePerMinute = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_SessionKeyPerEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		key     string
		wantErr bool
	}{
		{"dev keeps default", "dev", defaultSessionKey, false},
		{"prod rejects default", "prod", defaultSessionKey, true},
		{"prod rejects blank", "prod", "", true},
		{"prod accepts own key", "prod", testutil.SessionKey, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.SessionKey = tt.key
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newTestServer(t *testing.T) (http.Handler, *testutil.FakeBackend) {
	t.Helper()
	hs := testutil.NewHarness(t)
	deps := DBDeps{API: hs.API}
	h, err := BuildHandler(&config.CoreConfig{Env: "test"}, validConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	return h, hs.Backend
}

func TestBuildHandler_GuardedPagesRedirectToLogin(t *testing.T) {
	h, backend := newTestServer(t)

	for _, path := range []string{"/", "/dishes", "/dishes/new", "/orders", "/tables", "/customers"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
				t.Errorf("got %d %q, want 303 to /login", rec.Code, rec.Header().Get("Location"))
			}
		})
	}
	if n := len(backend.Requests()); n != 0 {
		t.Errorf("guard let %d requests reach the backend", n)
	}
}

func TestBuildHandler_StoredSessionRendersPages(t *testing.T) {
	h, backend := newTestServer(t)

	bridge, err := session.NewBridge(session.BridgeConfig{Key: testutil.SessionKey, Name: testutil.SessionName}, testLogger())
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	login := httptest.NewRecorder()
	user := session.User{"username": testutil.AdminUser().Username}
	if err := bridge.Persist(login, httptest.NewRequest(http.MethodGet, "/login", nil), user, testutil.TestToken); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	pages := []struct {
		path  string
		title string
	}{
		{"/", "<h1>Dashboard</h1>"},
		{"/dishes", "<h1>Dishes</h1>"},
		{"/orders", "<h1>Order Management</h1>"},
		{"/tables", "<h1>Tables</h1>"},
		{"/customers", "<h1>Customer Directory</h1>"},
	}
	for _, p := range pages {
		t.Run(p.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, testutil.CarryCookies(login, httptest.NewRequest(http.MethodGet, p.path, nil)))

			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s = %d, want 200", p.path, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), p.title) {
				t.Errorf("GET %s body missing %q", p.path, p.title)
			}
		})
	}
	for _, rr := range backend.Requests() {
		if rr.Auth != "Bearer "+testutil.TestToken {
			t.Errorf("%s sent Authorization %q", rr.Path, rr.Auth)
		}
	}
}

func TestBuildHandler_LoginPageIsPublic(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /login = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="gorilla.csrf.Token"`) {
		t.Error("login form carries no CSRF field")
	}
}

func TestBuildHandler_LoginPostWithoutTokenIsForbidden(t *testing.T) {
	h, backend := newTestServer(t)
	form := url.Values{"username": {testutil.TestUsername}, "password": {testutil.TestPassword}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, testutil.NewFormRequest(http.MethodPost, "/login", form))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if n := backend.CountRequests(http.MethodPost, "/api/auth/login"); n != 0 {
		t.Errorf("backend login called %d times, want 0", n)
	}
}

func TestBuildHandler_Health(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Database != "disabled" {
		t.Errorf("health = %+v", body)
	}
}

func TestBuildHandler_UnknownPathIs404(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestShutdown_WithoutMongo(t *testing.T) {
	if err := Shutdown(t.Context(), &config.CoreConfig{}, validConfig(), DBDeps{}, testLogger()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/lordsadmin/internal/app/system/apiclient"
	"github.com/dalemusser/lordsadmin/internal/app/system/flash"
	"github.com/dalemusser/lordsadmin/internal/app/system/session"
	"go.uber.org/zap"
)

// Cookie settings used by feature tests.
const (
	SessionKey  = "0123456789abcdef0123456789abcdef"
	SessionName = "lordsadmin-session"
)

// Harness bundles a fake backend with the client, cookie bridge and flash
// messenger a feature handler is built from.
type Harness struct {
	Backend *FakeBackend
	API     *apiclient.Client
	Bridge  *session.Bridge
	Flash   *flash.Messenger
	Log     *zap.Logger
}

// NewHarness starts a FakeBackend and wires a client to it.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	logger := zap.NewNop()

	fb := NewFakeBackend(t)
	api, err := apiclient.New(apiclient.Config{BaseURL: fb.URL()}, logger)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	bridge, err := session.NewBridge(session.BridgeConfig{Key: SessionKey, Name: SessionName}, logger)
	if err != nil {
		t.Fatalf("session.NewBridge: %v", err)
	}
	return &Harness{
		Backend: fb,
		API:     api,
		Bridge:  bridge,
		Flash:   flash.New(bridge.Cookies(), SessionName, logger),
		Log:     logger,
	}
}

// Flashes pops the flash messages rec queued, as the next page would.
func (h *Harness) Flashes(rec *httptest.ResponseRecorder) []flash.Message {
	req := CarryCookies(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return h.Flash.Pop(httptest.NewRecorder(), req)
}

// FlashText returns the text of the first queued flash of kind, or "".
func (h *Harness) FlashText(rec *httptest.ResponseRecorder, kind flash.Kind) string {
	for _, m := range h.Flashes(rec) {
		if m.Kind == kind {
			return m.Text
		}
	}
	return ""
}

// Session hydrates the session rec persisted.
func (h *Harness) Session(t *testing.T, rec *httptest.ResponseRecorder) session.Session {
	t.Helper()
	req := CarryCookies(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	st := session.New()
	if err := h.Bridge.Hydrate(req, st); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	return st.Read()
}

// Package flash carries one-shot notices across a redirect in a signed
// cookie next to the session record.
package flash

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Kind is the notice severity.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

var kinds = []Kind{Success, Error}

// Message is a notice ready for display.
type Message struct {
	Kind Kind
	Text string
}

// Messenger reads and writes flash notices.
type Messenger struct {
	store sessions.Store
	name  string
	log   *zap.Logger
}

// New returns a Messenger whose cookie is "<base>-flash".
func New(store sessions.Store, base string, logger *zap.Logger) *Messenger {
	return &Messenger{store: store, name: base + "-flash", log: logger}
}

// Add queues a notice for the next page render. A failure to write is
// logged and otherwise ignored; notices are best-effort.
func (m *Messenger) Add(w http.ResponseWriter, r *http.Request, kind Kind, text string) {
	sess, _ := m.store.Get(r, m.name)
	sess.AddFlash(text, string(kind))
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("flash save failed", zap.Error(err))
	}
}

// Success queues a success notice.
func (m *Messenger) Success(w http.ResponseWriter, r *http.Request, text string) {
	m.Add(w, r, Success, text)
}

// Error queues an error notice.
func (m *Messenger) Error(w http.ResponseWriter, r *http.Request, text string) {
	m.Add(w, r, Error, text)
}

// Pop returns and removes pending notices. Must run before the response
// body is written.
func (m *Messenger) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess, err := m.store.Get(r, m.name)
	if err != nil && sess.IsNew {
		return nil
	}

	var out []Message
	for _, k := range kinds {
		for _, v := range sess.Flashes(string(k)) {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, Message{Kind: k, Text: s})
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("flash clear failed", zap.Error(err))
	}
	return out
}

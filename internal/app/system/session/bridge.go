package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Persisted record entries. Both live in one signed cookie so they are
// written and removed together.
const (
	keyToken = "token"
	keyUser  = "user"
)

// DefaultMaxAge is used when BridgeConfig.MaxAge is zero.
const DefaultMaxAge = 7 * 24 * time.Hour

// BridgeConfig configures the session cookie.
type BridgeConfig struct {
	Key    string        // signing key, 32+ chars recommended
	Name   string        // cookie name
	Domain string        // blank means current host
	MaxAge time.Duration // cookie lifetime
	Secure bool          // Secure + SameSite=None when true
}

// Bridge keeps a Store in step with the persisted cookie record.
type Bridge struct {
	cookies *sessions.CookieStore
	name    string
	opts    sessions.Options
	log     *zap.Logger
}

// NewBridge builds the cookie store backing the persisted session record.
func NewBridge(cfg BridgeConfig, logger *zap.Logger) (*Bridge, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(cfg.Key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(cfg.Key)))
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	opts := sessions.Options{
		Domain:   cfg.Domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
	}
	// Secure cookies may be sent cross-site; plain-http dev stays on Lax.
	if cfg.Secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	cs := sessions.NewCookieStore([]byte(cfg.Key))
	cs.MaxAge(opts.MaxAge)
	o := opts
	cs.Options = &o

	logger.Info("session bridge initialized",
		zap.String("cookie", cfg.Name),
		zap.Bool("secure", cfg.Secure),
		zap.String("domain", cfg.Domain),
		zap.Duration("max_age", maxAge))

	return &Bridge{cookies: cs, name: cfg.Name, opts: opts, log: logger}, nil
}

// Cookies exposes the underlying cookie store so sibling cookies (flash
// messages) share the same signing key and options.
func (b *Bridge) Cookies() sessions.Store {
	return b.cookies
}

// Name is the session cookie name.
func (b *Bridge) Name() string {
	return b.name
}

// Hydrate loads the persisted record into st. A missing token leaves st
// untouched. A record that cannot be decoded yields ErrMalformedRecord and st
// stays signed out.
func (b *Bridge) Hydrate(r *http.Request, st *Store) error {
	sess, err := b.cookies.Get(r, b.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			return fmt.Errorf("%w: cookie did not verify: %v", ErrMalformedRecord, err)
		}
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	token, _ := sess.Values[keyToken].(string)
	if token == "" {
		return nil
	}

	raw, _ := sess.Values[keyUser].(string)
	user, err := UnmarshalUser(raw)
	if err != nil {
		return err
	}
	if err := st.Login(user, token); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}

// Persist writes token and user in a single cookie save.
func (b *Bridge) Persist(w http.ResponseWriter, r *http.Request, user User, token string) error {
	if user == nil || token == "" {
		return ErrInvalidSession
	}
	raw, err := MarshalUser(user)
	if err != nil {
		return err
	}

	// A decode error still hands back a fresh session we can overwrite.
	sess, _ := b.cookies.Get(r, b.name)
	o := b.opts
	sess.Options = &o
	sess.Values[keyToken] = token
	sess.Values[keyUser] = raw

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes both entries and expires the cookie.
func (b *Bridge) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := b.cookies.Get(r, b.name)
	delete(sess.Values, keyToken)
	delete(sess.Values, keyUser)

	o := b.opts
	o.MaxAge = -1
	sess.Options = &o

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Middleware hydrates a fresh Store before anything downstream runs, so the
// guard never sees a half-loaded session. A corrupt record is logged,
// removed, and the request continues signed out.
func (b *Bridge) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := New()
		if err := b.Hydrate(r, st); err != nil {
			b.log.Warn("session record discarded",
				zap.Error(err),
				zap.String("path", r.URL.Path))
			if errors.Is(err, ErrMalformedRecord) {
				if cerr := b.Clear(w, r); cerr != nil {
					b.log.Error("clear malformed session failed", zap.Error(cerr))
				}
			}
		}
		next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), st)))
	})
}

// Package timeouts holds the deadlines handlers put on backend work.
//
// Handlers wrap each upstream call in context.WithTimeout using one of
// these values; the API client's own HTTP timeout is a separate, outer
// bound. Values are set once at startup and read on every request.
//
//   - Ping: /health reachability checks (backend, MongoDB)
//   - Short: one mutation or the login call
//   - Medium: list fetches (dishes, orders, tables, customers)
//   - Long: the dashboard's concurrent analytics fan-out
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure is called.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 15 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds timeout values. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
	set(&long, cfg.Long)
}

func set(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores the defaults. Tests use it to undo Configure.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium, long = DefaultPing, DefaultShort, DefaultMedium, DefaultLong
}

// ConfigureFromEnv reads LORDSADMIN_TIMEOUT_{PING,SHORT,MEDIUM,LONG}
// (Go duration strings). Unset or invalid values are skipped. It returns
// how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"LORDSADMIN_TIMEOUT_PING", &cfg.Ping},
		{"LORDSADMIN_TIMEOUT_SHORT", &cfg.Short},
		{"LORDSADMIN_TIMEOUT_MEDIUM", &cfg.Medium},
		{"LORDSADMIN_TIMEOUT_LONG", &cfg.Long},
	} {
		if v := os.Getenv(e.name); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*e.dst = d
				n++
			}
		}
	}
	Configure(cfg)
	return n
}

// Current returns the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long}
}

// LogCurrent writes the active values at info level.
func LogCurrent(logger *zap.Logger) {
	c := Current()
	logger.Info("handler timeouts",
		zap.Duration("ping", c.Ping),
		zap.Duration("short", c.Short),
		zap.Duration("medium", c.Medium),
		zap.Duration("long", c.Long))
}

// WithTimeout is context.WithTimeout whose cancel func warns when the
// deadline, rather than the caller, ended the work.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("backend call timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}

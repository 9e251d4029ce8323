// Package timeouts provides centralized timeout values for database and
// network operations.
//
// Handlers derive a context from the request with one of these values
// before touching MongoDB:
//   - Ping: health checks
//   - Short: single-document reads and writes (get, create, update, delete)
//   - Medium: list and advanced-results queries, mail delivery
//   - Batch: seeding and other bulk operations
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultBatch  = 60 * time.Second
)

// Config holds timeout configuration values.
// Zero values are ignored (current values are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Batch  time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Batch: DefaultBatch}
}

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration { return Current().Ping }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return Current().Short }

// Medium returns the timeout for list queries.
func Medium() time.Duration { return Current().Medium }

// Batch returns the timeout for bulk imports and deletes.
func Batch() time.Duration { return Current().Batch }

// Current returns a copy of the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Configure overrides the non-zero values in cfg. Call it during startup,
// before handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&cur, cfg)
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

func merge(dst *Config, src Config) {
	if src.Ping > 0 {
		dst.Ping = src.Ping
	}
	if src.Short > 0 {
		dst.Short = src.Short
	}
	if src.Medium > 0 {
		dst.Medium = src.Medium
	}
	if src.Batch > 0 {
		dst.Batch = src.Batch
	}
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM and
// TIMEOUT_BATCH (Go duration strings such as "5s" or "2m"). Unset or
// invalid values are ignored. It returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	applied := 0
	for name, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":   &cfg.Ping,
		"TIMEOUT_SHORT":  &cfg.Short,
		"TIMEOUT_MEDIUM": &cfg.Medium,
		"TIMEOUT_BATCH":  &cfg.Batch,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			applied++
		}
	}
	Configure(cfg)
	return applied
}

// WithTimeout creates a context with timeout whose cancel function logs a
// warning if the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch(), logger, "seed import")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}

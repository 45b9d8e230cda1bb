// Package timeouts centralizes the context deadlines handlers use for
// database work.
//
// Pick by operation shape:
//   - Ping: connectivity checks
//   - Short: single-document reads
//   - Long: multi-collection reads and writes
//
// Medium covers everything between. Values start at defaults and may be
// overridden once at startup via Configure or ConfigureFromEnv.
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Defaults used when Configure is never called.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
// Examples: offering by ID, user lookup at sign-in.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
// Examples: an instructor's offerings, feature gate rule scans.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for operations spanning several collections.
// Examples: a readiness evaluation, publishing an offering.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
}

// ConfigureFromEnv reads overrides from CHAPTERHUB_TIMEOUT_* variables
// (Go duration syntax, e.g. "5s", "500ms"). Unset or invalid values keep
// the current setting. Returns how many were applied.
func ConfigureFromEnv() int {
	applied := 0
	cfg := Config{}
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"CHAPTERHUB_TIMEOUT_PING", &cfg.Ping},
		{"CHAPTERHUB_TIMEOUT_SHORT", &cfg.Short},
		{"CHAPTERHUB_TIMEOUT_MEDIUM", &cfg.Medium},
		{"CHAPTERHUB_TIMEOUT_LONG", &cfg.Long},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			applied++
		}
	}
	Configure(cfg)
	return applied
}

// Reset restores defaults. Useful for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}

// Current returns the active configuration, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long}
}

// Package cache provides a bounded, expiring in-memory cache used to
// memoize settlements by snapshot key.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache is the lookup surface the services depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Len() int
}

// Cleaner is implemented by caches whose expired entries can be swept.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps registered caches.
type Janitor struct {
	caches   []Cleaner
	interval time.Duration
}

// NewJanitor creates a Janitor that sweeps every interval.
func NewJanitor(interval time.Duration, caches ...Cleaner) *Janitor {
	return &Janitor{caches: caches, interval: interval}
}

// Run sweeps until ctx is cancelled. It always returns nil so it can run
// inside an errgroup next to the servers.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := j.Sweep()
			if removed > 0 {
				slog.Debug("Cache sweep", "removed", removed)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Sweep cleans every registered cache once and returns the number of entries removed.
func (j *Janitor) Sweep() int {
	total := 0
	for _, c := range j.caches {
		total += c.CleanExpired()
	}
	return total
}

package realtime

import (
	"context"
	"log"
	"sync"
	"time"
)

// Fetcher fetches raw feed bytes. *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Cache holds the most recently parsed feed snapshot.
//
// Refresh is the only writer; request handlers call Current concurrently.
// The snapshot is replaced as a whole under the mutex, never mutated in
// place.
type Cache struct {
	fetcher  Fetcher
	interval time.Duration
	timeout  time.Duration

	mu   sync.RWMutex
	snap *Snapshot

	onRefresh []func(*Snapshot)
	onError   []func(error)
}

// NewCache creates a cache that refreshes from fetcher every interval.
// Each fetch is bounded by timeout so a hung feed cannot outlive the tick.
func NewCache(fetcher Fetcher, interval, timeout time.Duration) *Cache {
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Cache{fetcher: fetcher, interval: interval, timeout: timeout}
}

// OnRefresh registers a callback invoked after every successful refresh with
// the new snapshot. Must be called before Run.
func (c *Cache) OnRefresh(fn func(*Snapshot)) {
	c.onRefresh = append(c.onRefresh, fn)
}

// OnRefreshError registers a callback invoked when a refresh fails.
// Must be called before Run.
func (c *Cache) OnRefreshError(fn func(error)) {
	c.onError = append(c.onError, fn)
}

// Current returns the latest snapshot, or nil if no fetch has ever
// succeeded. Callers must not mutate the returned snapshot.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Refresh fetches and parses the feed once. On failure the previous
// snapshot is left untouched and the error is returned for logging; it is
// never surfaced to request callers.
func (c *Cache) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.refreshFailed(err)
		return err
	}
	snap, err := ParseSnapshot(raw)
	if err != nil {
		c.refreshFailed(err)
		return err
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	for _, fn := range c.onRefresh {
		fn(snap)
	}
	return nil
}

func (c *Cache) refreshFailed(err error) {
	for _, fn := range c.onError {
		fn(err)
	}
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
// It never blocks request handling; failures are logged and the loop keeps
// going with the previous snapshot.
func (c *Cache) Run(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		log.Printf("realtime: initial refresh failed: %v", err)
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				log.Printf("realtime: refresh failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

package configurator

import (
	"context"
	"sync"
	"time"
)

// DefaultSearchDelay is how long icon search input must settle before a
// catalog request is issued.
const DefaultSearchDelay = 250 * time.Millisecond

// Debouncer bounds request volume for search-driven icon filtering. Each
// call supersedes the previous one via a generation token; there is no true
// cancellation of an in-flight request, only "last completed wins" at apply
// time.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	gen   uint64
}

// NewDebouncer creates a debouncer with the given settle delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Wait registers a new request generation, sleeps the settle delay and
// reports whether the caller is still the latest request afterwards. A false
// return means the caller's input was superseded and it must not issue its
// request or apply its result.
func (d *Debouncer) Wait(ctx context.Context) bool {
	d.mu.Lock()
	d.gen++
	token := d.gen
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.gen
}

// Current reports whether token is still the latest generation. Used by
// callers that re-check after a slow catalog response.
func (d *Debouncer) Current(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.gen
}

// Token returns the latest generation without registering a new one.
func (d *Debouncer) Token() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// Window is a fixed-window limiter: at most limit calls per key per
// window. Bursts straddling a window boundary are accepted as a known
// limitation of the scheme.
type Window struct {
	mu      sync.Mutex
	limit   int
	span    time.Duration
	now     func() time.Time
	entries map[string]*window
}

func NewWindow(limit int, span time.Duration) *Window {
	return &Window{
		limit:   limit,
		span:    span,
		now:     time.Now,
		entries: make(map[string]*window),
	}
}

// Allow reports whether the key may proceed. The first call of a window
// resets the cell to count 1; afterwards the count is checked before it
// is incremented, so a rejected call does not consume quota.
func (w *Window) Allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	e, ok := w.entries[key]
	if !ok || now.Sub(e.start) > w.span {
		w.entries[key] = &window{count: 1, start: now}
		return true
	}
	if e.count < w.limit {
		e.count++
		return true
	}
	return false
}

// Sweep evicts expired windows every interval until ctx is cancelled,
// keeping the key map bounded over the process lifetime.
func (w *Window) Sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.evict()
		}
	}
}

func (w *Window) evict() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	for k, e := range w.entries {
		if now.Sub(e.start) > w.span {
			delete(w.entries, k)
		}
	}
}

// Len reports the number of tracked keys.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Package ratelimit provides a fixed-window in-memory request limiter and an
// HTTP middleware built on it. State lives in process memory; a restart
// resets all windows, which is acceptable for the API's abuse ceiling.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of one limit check.
type Result struct {
	Success   bool
	Remaining int
	ResetAt   time.Time
}

type window struct {
	count    int
	windowAt time.Time
}

// Limiter counts requests per key in fixed windows.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time

	lastPrune time.Time
}

// NewLimiter creates an empty limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check records one request against key and reports whether it fits within
// limit requests per window. The first request after a window expires starts
// a fresh window anchored at that request.
func (l *Limiter) Check(key string, limit int, windowDur time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now, windowDur)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.windowAt) >= windowDur {
		w = &window{count: 0, windowAt: now}
		l.windows[key] = w
	}

	resetAt := w.windowAt.Add(windowDur)
	if w.count >= limit {
		return Result{Success: false, Remaining: 0, ResetAt: resetAt}
	}
	w.count++
	return Result{Success: true, Remaining: limit - w.count, ResetAt: resetAt}
}

// pruneLocked drops expired windows at most once per minute so the map does
// not grow unbounded under rotating keys.
func (l *Limiter) pruneLocked(now time.Time, windowDur time.Duration) {
	if now.Sub(l.lastPrune) < time.Minute {
		return
	}
	l.lastPrune = now
	for key, w := range l.windows {
		if now.Sub(w.windowAt) >= windowDur {
			delete(l.windows, key)
		}
	}
}

package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// Common errors.
var (
	ErrLimitExceeded = errors.New("rate limit exceeded")
	ErrInvalidConfig = errors.New("invalid rate limit configuration")
	ErrClosed        = errors.New("limiter closed")
)

// Decision describes the outcome of a single Allow call.
type Decision struct {
	// Allowed reports whether the request fits in the current window.
	Allowed bool
	// Limit is the quota per window.
	Limit int
	// Remaining is the number of requests still admitted in this window.
	Remaining int
	// ResetAt is when the current window ends.
	ResetAt time.Time
}

// RetryAfter returns how long the caller should wait before the window resets.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if wait := d.ResetAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// window tracks the consumption of one key.
type window struct {
	start time.Time
	used  int
}

// Limiter is a per-key fixed-window rate limiter. A key's window opens on its
// first request and lasts for the configured duration; once it has elapsed
// the next request opens a fresh window.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	closed  bool
	nowFunc func() time.Time // for testing

	stop chan struct{}
	done chan struct{}
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock replaces the limiter's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.nowFunc = now
	}
}

// New creates a limiter admitting limit requests per key per period.
func New(limit int, period time.Duration, opts ...Option) (*Limiter, error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidConfig
	}

	l := &Limiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Limit returns the quota per window.
func (l *Limiter) Limit() int {
	return l.limit
}

// Period returns the window length.
func (l *Limiter) Period() time.Duration {
	return l.period
}

// Now returns the current time as seen by the limiter.
func (l *Limiter) Now() time.Time {
	return l.nowFunc()
}

// Allow consumes one request for key and reports whether it was admitted.
// Rejected requests do not consume quota.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()

	if l.closed {
		return Decision{Allowed: false, Limit: l.limit, ResetAt: now}
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.period)) {
		w = &window{start: now}
		l.windows[key] = w
	}

	resetAt := w.start.Add(l.period)
	if w.used >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: resetAt}
	}

	w.used++
	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - w.used,
		ResetAt:   resetAt,
	}
}

// Len returns the number of keys with a tracked window.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Sweep drops windows that have expired and returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.period)) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired windows every interval until Close is called.
// Calling it more than once has no effect.
func (l *Limiter) StartJanitor(interval time.Duration) {
	l.mu.Lock()
	if l.stop != nil || l.closed || interval <= 0 {
		l.mu.Unlock()
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	stop, done := l.stop, l.done
	l.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// Close stops the janitor and rejects all further requests.
func (l *Limiter) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	stop, done := l.stop, l.done
	l.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}

// Package ratelimit throttles suggestion submissions per client address.
// It is a best-effort deterrent, not billing-grade enforcement: small
// overshoots under concurrency and lost state on restart are acceptable.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a submission from a key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory is the default in-process limiter: a per-key count and window-reset
// timestamp. The clock is a field so window expiry is testable.
type Memory struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	entries map[string]*entry
}

type entry struct {
	count int
	reset time.Time
}

// NewMemory builds a limiter allowing max submissions per key per window.
func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		max:     max,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Allow counts a submission against key's current window. A fresh or expired
// window resets to count 1; every later submission increments the count and
// is allowed while the count is within the limit. Denied submissions never
// extend the window. The Postgres limiter implements the same rule.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.After(e.reset) {
		m.entries[key] = &entry{count: 1, reset: now.Add(m.window)}
		return true, nil
	}
	e.count++
	return e.count <= m.max, nil
}

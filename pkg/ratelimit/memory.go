package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	count       int
	windowStart time.Time
}

// Memory is a process-local Limiter. Counters live until the process exits;
// nothing evicts idle keys, so memory grows with the number of distinct
// clients seen.
type Memory struct {
	mu       sync.Mutex
	counters map[string]*counter

	// Now is the limiter's clock. Nil means time.Now.
	Now func() time.Time
}

// NewMemory returns an empty in-memory limiter.
func NewMemory() *Memory {
	return &Memory{counters: make(map[string]*counter)}
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// CheckAndRecord implements Limiter. It never returns an error.
func (m *Memory) CheckAndRecord(_ context.Context, client, action string, max int, window time.Duration) (bool, error) {
	now := m.now()
	k := key(client, action)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counters == nil {
		m.counters = make(map[string]*counter)
	}

	c, ok := m.counters[k]
	if !ok || now.Sub(c.windowStart) > window {
		m.counters[k] = &counter{count: 1, windowStart: now}
		return false, nil
	}

	c.count++
	return c.count > max, nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.counters)
}

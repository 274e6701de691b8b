// Package ratelimit implements fixed-window request counters keyed by
// (client, action).
//
// A window opens on the first request for a key. Requests inside the window
// increment the counter and the request that takes it past max is the first
// one rejected. Once more than the window duration has elapsed since the
// window opened, the next request starts a new window with a count of 1.
// Clients can therefore burst up to 2*max requests across a window boundary.
package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// UnknownClient is the shared bucket for requests that carry no client
// identifying header.
const UnknownClient = "unknown"

// Limiter counts requests per (client, action) key.
type Limiter interface {
	// CheckAndRecord records one request and reports whether it exceeded max
	// within the current window.
	CheckAndRecord(ctx context.Context, client, action string, max int, window time.Duration) (bool, error)
}

// Rule is a per-action threshold.
type Rule struct {
	Action string
	Max    int
	Window time.Duration
}

// Exceeded records a request against the rule and reports whether it exceeded.
func (r Rule) Exceeded(ctx context.Context, l Limiter, client string) (bool, error) {
	return l.CheckAndRecord(ctx, client, r.Action, r.Max, r.Window)
}

// ClientIdentifier derives the rate-limit identity for r from the
// X-Forwarded-For header, then X-Real-IP, falling back to UnknownClient.
// Both headers are client-controlled; a caller can pick its own bucket.
func ClientIdentifier(r *http.Request) string {
	if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
		return xff
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return UnknownClient
}

func key(client, action string) string {
	return client + ":" + action
}

package httpx

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/authapp/pkg/ratelimit"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines token-bucket parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the sustained number of requests allowed per Window.
	RequestsPerWindow int
	// Window is the refill period for RequestsPerWindow.
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit.
	Burst int
}

// LenientLimit is the profile for authenticated account operations.
var LenientLimit = RateLimitConfig{
	RequestsPerWindow: 100,
	Window:            time.Minute,
	Burst:             100,
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes.
type KeyExtractor func(*http.Request) string

const cleanupInterval = 5 * time.Minute

// bucketSet manages token buckets for different keys.
type bucketSet struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (bs *bucketSet) get(key string) *rate.Limiter {
	if l, ok := bs.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	l := rate.NewLimiter(bs.rate, bs.burst)
	actual, _ := bs.limiters.LoadOrStore(key, l)

	bs.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops buckets that have refilled completely, which only
// happens to keys that have been idle.
func (bs *bucketSet) maybeCleanup() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if time.Since(bs.lastCleanup) < cleanupInterval {
		return
	}
	bs.lastCleanup = time.Now()

	bs.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(bs.burst) {
			bs.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware throttles requests per key with a token bucket.
// Rejected requests get 429 {"error":"Too many requests"} and a Retry-After
// header.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	bs := &bucketSet{
		rate:        rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			l := bs.get(key)
			if !l.Allow() {
				reservation := l.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := max(int(delay.Seconds()), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByClient limits by ratelimit.ClientIdentifier.
func RateLimitByClient(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, ratelimit.ClientIdentifier)
}

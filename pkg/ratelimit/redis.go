package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps failures talking to the counter backend.
var ErrUnavailable = errors.New("ratelimit: backend unavailable")

const defaultRedisPrefix = "rl:"

// Redis is a Limiter whose counters live in Redis so several processes share
// them. A window opens when INCR creates the key, and the key's TTL closes it.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a Redis-backed limiter. An empty prefix uses "rl:".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// CheckAndRecord implements Limiter. INCR and PTTL run in one MULTI so the
// TTL is read for the count just taken. A key without a TTL gets one here,
// whether it was just created or an earlier PEXPIRE never landed.
func (r *Redis) CheckAndRecord(ctx context.Context, client, action string, max int, window time.Duration) (bool, error) {
	k := r.prefix + key(client, action)

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if ttl.Val() < 0 {
		if err := r.client.PExpire(ctx, k, window).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return incr.Val() > int64(max), nil
}

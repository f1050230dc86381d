// Package ratelimit implements a continuously refilled token bucket backed
// by Redis, shared by every API replica. One bucket per subject; the Lua
// script makes the read-refill-take sequence atomic.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// bucketScript refills from the stored timestamp, takes the requested
// tokens when available, and reports how long until enough tokens exist
// otherwise. State expires after the TTL so idle subjects cost nothing.
var bucketScript = redis.NewScript(`
local state = redis.call("HMGET", KEYS[1], "tokens", "stamp_ms")
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])
local want = tonumber(ARGV[4])

local tokens = tonumber(state[1]) or capacity
local stamp = tonumber(state[2]) or now_ms

tokens = math.min(capacity, tokens + math.max(0, now_ms - stamp) * rate)

local ok = 0
local wait_ms = 0
if tokens >= want then
  tokens = tokens - want
  ok = 1
else
  wait_ms = math.ceil((want - tokens) / rate)
end

redis.call("HMSET", KEYS[1], "tokens", tokens, "stamp_ms", now_ms)
redis.call("PEXPIRE", KEYS[1], tonumber(ARGV[5]))

return {ok, math.floor(tokens), wait_ms}
`)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type RedisTokenBucket struct {
	client    redis.UniversalClient
	capacity  int64
	ratePerMS float64
	ttl       time.Duration
	keyPrefix string
	now       func() time.Time
}

// NewRedisTokenBucket builds a limiter that grants capacity tokens per
// window, refilled continuously rather than in discrete window resets.
func NewRedisTokenBucket(client redis.UniversalClient, capacity int, window time.Duration, keyPrefix string) (*RedisTokenBucket, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive")
	}
	if strings.TrimSpace(keyPrefix) == "" {
		keyPrefix = "darkroom:ratelimit"
	}

	windowMS := max(window.Milliseconds(), 1)

	return &RedisTokenBucket{
		client:    client,
		capacity:  int64(capacity),
		ratePerMS: float64(capacity) / float64(windowMS),
		ttl:       2 * window,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}, nil
}

// Allow takes one token from the subject's bucket.
func (l *RedisTokenBucket) Allow(ctx context.Context, subject string) (Decision, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "anonymous"
	}

	reply, err := bucketScript.Run(
		ctx,
		l.client,
		[]string{l.keyPrefix + ":" + subject},
		l.capacity,
		l.ratePerMS,
		l.now().UTC().UnixMilli(),
		1,
		l.ttl.Milliseconds(),
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("run token bucket script: %w", err)
	}

	return parseDecision(reply)
}

func parseDecision(reply any) (Decision, error) {
	values, ok := reply.([]any)
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("unexpected token bucket reply %T", reply)
	}

	nums := make([]int64, 3)
	for i, v := range values {
		n, err := replyInt(v)
		if err != nil {
			return Decision{}, fmt.Errorf("token bucket reply field %d: %w", i, err)
		}
		nums[i] = n
	}

	return Decision{
		Allowed:    nums[0] == 1,
		Remaining:  nums[1],
		RetryAfter: time.Duration(nums[2]) * time.Millisecond,
	}, nil
}

func replyInt(in any) (int64, error) {
	switch v := in.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", in)
	}
}

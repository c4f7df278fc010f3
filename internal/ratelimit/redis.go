package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ratelimit:"

// slidingWindow prunes admissions older than the window, counts what is
// left, and records the new admission only if the budget allows. Runs as
// one script so concurrent checks cannot over-admit. Times are in
// milliseconds; returns {allowed, remaining, retry_after_ms}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, 0, now - window)
local count = redis.call("ZCARD", key)
if count < limit then
	redis.call("ZADD", key, now, member)
	redis.call("PEXPIRE", key, window)
	return {1, limit - count - 1, 0}
end

local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
local retry = 0
if oldest[2] then
	retry = tonumber(oldest[2]) + window - now
	if retry < 0 then
		retry = 0
	end
end
return {0, 0, retry}
`)

// RedisLimiter is a sliding-window limiter over a Redis sorted set, one
// set per key, scored by admission time.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

type RedisOption func(*RedisLimiter)

func WithKeyPrefix(prefix string) RedisOption {
	return func(l *RedisLimiter) { l.prefix = prefix }
}

// NewRedisLimiter returns a limiter admitting at most limit events per
// sliding window per key.
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration, opts ...RedisOption) *RedisLimiter {
	l := &RedisLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	// Members must be unique per admission: two requests in the same
	// millisecond would otherwise collapse into one sorted-set entry.
	member := strconv.FormatInt(now.UnixNano(), 10)

	res, err := slidingWindow.Run(ctx, l.rdb,
		[]string{l.prefix + key},
		now.UnixMilli(), l.window.Milliseconds(), l.limit, member,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit eval: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("rate limit eval: unexpected reply %v", res)
	}

	return Decision{
		Allowed:    res[0] == 1,
		Remaining:  int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

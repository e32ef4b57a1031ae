package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// 補充與扣減在同一個 script 內完成, 多個 instance 共用同一個 bucket
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1])
local lastRefill = tonumber(bucket[2])

if tokens == nil then
	tokens = capacity
	lastRefill = now
end

local elapsed = (now - lastRefill) / 1000000000
if elapsed > 0 then
	tokens = math.min(capacity, tokens + elapsed * rate)
	lastRefill = now
end

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', lastRefill)
redis.call('EXPIRE', key, ttl)
return allowed
`)

type RedisTokenBucket struct {
	cfg    Config
	client redis.Scripter
	prefix string
	ttl    int
}

func NewRedisTokenBucket(client redis.Scripter, prefix string, cfg Config) (*RedisTokenBucket, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// 空 bucket 補滿所需時間之後就可以丟棄
	ttl := int(math.Ceil(float64(cfg.Capacity)/cfg.RatePS)) + 1
	return &RedisTokenBucket{cfg: cfg, client: client, prefix: prefix, ttl: ttl}, nil
}

func (r *RedisTokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	result, err := tokenBucketScript.Run(
		ctx,
		r.client,
		[]string{fmt.Sprintf("%s:ratelimit:%s", r.prefix, key)},
		r.cfg.Capacity,
		r.cfg.RatePS,
		time.Now().UnixNano(),
		r.ttl,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("run token bucket script: %w", err)
	}
	return result == 1, nil
}

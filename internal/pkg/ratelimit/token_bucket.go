package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucket 單機版本, 每個 key 一個 bucket, 取用時才補充 token
type TokenBucket struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewTokenBucket(cfg Config) (*TokenBucket, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenBucket{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}, nil
}

func (t *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.cfg.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(t.cfg.Capacity), b.tokens+elapsed*t.cfg.RatePS)
		b.lastRefill = now
	}

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// Package ratelimit 以 token bucket 限制同一個 key 的請求頻率
package ratelimit

import (
	"context"
	"errors"
)

type Limiter interface {
	// Allow 取用一個 token, 不足時回傳 false
	Allow(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Capacity int     // bucket 容量, 也是初始 token 數
	RatePS   float64 // 每秒補充的 token 數
}

func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if c.RatePS <= 0 {
		return errors.New("rate must be positive")
	}
	return nil
}

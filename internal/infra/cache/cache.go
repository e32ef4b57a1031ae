package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Ping(ctx context.Context) (string, error)
	// Get key 不存在時回傳 ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// SetNX key 不存在才寫入, 回傳是否有寫入
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

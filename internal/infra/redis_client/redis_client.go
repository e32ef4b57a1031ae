package redis_client

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	_instances = sync.Map{}
)

// GetRedisClient 同一個 address 共用一個 client
func GetRedisClient(address string, options ...Option) (*redis.Client, error) {
	client, ok := _instances.Load(address)
	if !ok {
		var err error
		client, err = createRedisClient(address, options...)
		if err != nil {
			return nil, err
		}
		actual, loaded := _instances.LoadOrStore(address, client)
		if loaded {
			_ = client.(*redis.Client).Close()
		}
		client = actual
	}

	return client.(*redis.Client), nil
}

// CloseRedisClient 關閉並移出 registry
func CloseRedisClient(address string) error {
	client, ok := _instances.LoadAndDelete(address)
	if !ok {
		return nil
	}
	return client.(*redis.Client).Close()
}

func createRedisClient(address string, options ...Option) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:        address,
		DialTimeout: 3 * time.Second,
	}

	for _, option := range options {
		option(opts)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		o.PoolSize = poolSize
	}
}

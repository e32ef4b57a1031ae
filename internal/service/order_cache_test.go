package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/cache"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// heldCache 記憶體 cache.Cache, 可以把 SetNX 卡住直到 release 關閉
type heldCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	hold    bool
	holding chan struct{}
	release chan struct{}
}

func newHeldCache() *heldCache {
	return &heldCache{
		data:    make(map[string][]byte),
		holding: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (c *heldCache) Ping(context.Context) (string, error) { return "PONG", nil }

func (c *heldCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *heldCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.([]byte)
	return nil
}

func (c *heldCache) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	c.mu.Lock()
	hold := c.hold
	c.hold = false
	c.mu.Unlock()
	if hold {
		close(c.holding)
		<-c.release
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value.([]byte)
	return true, nil
}

func (c *heldCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// 讀取路徑讀到舊狀態後, 在 SetStatus commit 之後才寫入快取, 不能把舊狀態蓋回去
func TestLateCacheFillDoesNotOverrideNewStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	backend := newHeldCache()
	orderCache := redis_repo.NewOrderCacheRepo(backend, time.Minute)
	orderService := NewOrderService(f.store, orderCache, nil, logger.Nop())
	querySvc := NewOrderQueryService(f.store, orderCache, logger.Nop())

	orderID, err := orderService.PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	backend.hold = true
	type result struct {
		view *model.OrderView
		err  error
	}
	done := make(chan result, 1)
	go func() {
		view, err := querySvc.GetOrder(ctx, f.customerViewer(), orderID)
		done <- result{view, err}
	}()

	<-backend.holding
	status, err := orderService.SetStatus(ctx, f.adminViewer(), orderID, "shipped")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, status)
	close(backend.release)

	first := <-done
	require.NoError(t, first.err)
	require.Equal(t, model.OrderStatusPending, first.view.Status)

	view, err := querySvc.GetOrder(ctx, f.customerViewer(), orderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, view.Status)
}

func TestSetStatusWritesFreshViewToCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orderCache := redis_repo.NewOrderCacheRepo(newHeldCache(), time.Minute)
	orderService := NewOrderService(f.store, orderCache, nil, logger.Nop())
	querySvc := NewOrderQueryService(f.store, orderCache, logger.Nop())

	orderID, err := orderService.PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	// 先讓快取存在舊狀態
	view, err := querySvc.GetOrder(ctx, f.customerViewer(), orderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, view.Status)

	_, err = orderService.SetStatus(ctx, f.adminViewer(), orderID, "processing")
	require.NoError(t, err)

	cached, err := orderCache.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusProcessing, cached.Status)
}

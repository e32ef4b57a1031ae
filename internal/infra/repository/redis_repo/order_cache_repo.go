package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/cache"
)

var ErrOrderCacheMiss = errors.New("order view not cached")

// IOrderCacheRepository 訂單查詢結果快取
// 快取內容不含權限判斷, 讀取後仍要檢查 viewer
type IOrderCacheRepository interface {
	// GetOrder 錯誤:
	//   - ErrOrderCacheMiss: 沒有快取
	GetOrder(ctx context.Context, orderID int64) (*model.OrderView, error)
	// SetOrder 覆蓋寫入, 用在狀態變更 commit 之後
	SetOrder(ctx context.Context, view *model.OrderView) error
	// FillOrder 只在沒有快取時寫入, 讀取路徑使用, 不會蓋掉較新的快取
	FillOrder(ctx context.Context, view *model.OrderView) error
	DeleteOrder(ctx context.Context, orderID int64) error
}

type OrderCacheRepo struct {
	OrderCache cache.Cache
	ttl        time.Duration
}

var _ IOrderCacheRepository = (*OrderCacheRepo)(nil)

func NewOrderCacheRepo(orderCache cache.Cache, ttl time.Duration) *OrderCacheRepo {
	return &OrderCacheRepo{OrderCache: orderCache, ttl: ttl}
}

func orderKey(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

// 取得訂單快取
func (s *OrderCacheRepo) GetOrder(ctx context.Context, orderID int64) (*model.OrderView, error) {
	data, err := s.OrderCache.Get(ctx, orderKey(orderID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrOrderCacheMiss
		}
		return nil, fmt.Errorf("獲取訂單快取失敗: %w", err)
	}

	var view model.OrderView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("反序列化訂單快取失敗: %w", err)
	}
	return &view, nil
}

// 保存訂單快取
func (s *OrderCacheRepo) SetOrder(ctx context.Context, view *model.OrderView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("序列化訂單快取失敗: %w", err)
	}
	if err := s.OrderCache.Set(ctx, orderKey(view.ID), data, s.ttl); err != nil {
		return fmt.Errorf("保存訂單快取失敗: %w", err)
	}
	return nil
}

func (s *OrderCacheRepo) FillOrder(ctx context.Context, view *model.OrderView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("序列化訂單快取失敗: %w", err)
	}
	if _, err := s.OrderCache.SetNX(ctx, orderKey(view.ID), data, s.ttl); err != nil {
		return fmt.Errorf("保存訂單快取失敗: %w", err)
	}
	return nil
}

// 刷新快取失敗時改為刪除
func (s *OrderCacheRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	return s.OrderCache.Delete(ctx, orderKey(orderID))
}

// NopOrderCacheRepo 未設定 REDIS_ADDR 時使用, 每次都 miss
type NopOrderCacheRepo struct{}

var _ IOrderCacheRepository = NopOrderCacheRepo{}

func (NopOrderCacheRepo) GetOrder(context.Context, int64) (*model.OrderView, error) {
	return nil, ErrOrderCacheMiss
}

func (NopOrderCacheRepo) SetOrder(context.Context, *model.OrderView) error {
	return nil
}

func (NopOrderCacheRepo) FillOrder(context.Context, *model.OrderView) error {
	return nil
}

func (NopOrderCacheRepo) DeleteOrder(context.Context, int64) error {
	return nil
}

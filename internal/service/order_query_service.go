package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/rs/zerolog"
)

// IOrderQueryService 唯讀, 不修改任何資料
type IOrderQueryService interface {
	// ListOrdersForUser viewer 自己的訂單, 新到舊
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 匿名呼叫
	ListOrdersForUser(ctx context.Context, viewer Viewer) ([]model.OrderView, error)
	// ListAllOrders 所有訂單, 含下單用戶名稱與 email
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 匿名呼叫
	//   - apperr.ForbiddenCode 403: 非管理者
	ListAllOrders(ctx context.Context, viewer Viewer) ([]model.OrderView, error)
	// GetOrder 單筆訂單
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 匿名呼叫
	//   - apperr.NotFoundCode 404: 訂單不存在, 或不屬於 viewer
	GetOrder(ctx context.Context, viewer Viewer, orderID int64) (*model.OrderView, error)
}

type OrderQueryService struct {
	store      db.Store
	orderCache redis_repo.IOrderCacheRepository
	logger     *zerolog.Logger
}

var _ IOrderQueryService = (*OrderQueryService)(nil)

func NewOrderQueryService(store db.Store, orderCache redis_repo.IOrderCacheRepository, log *zerolog.Logger) *OrderQueryService {
	if store == nil {
		panic("store cannot be nil")
	}
	if orderCache == nil {
		orderCache = redis_repo.NopOrderCacheRepo{}
	}
	return &OrderQueryService{store: store, orderCache: orderCache, logger: log}
}

func toViews(orders []model.Order) []model.OrderView {
	views := make([]model.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *model.NewOrderView(&orders[i]))
	}
	return views
}

func (s *OrderQueryService) ListOrdersForUser(ctx context.Context, viewer Viewer) ([]model.OrderView, error) {
	userID, err := requireAuthenticated(viewer)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err, "list orders of user %d", userID)
	}
	return toViews(orders), nil
}

func (s *OrderQueryService) ListAllOrders(ctx context.Context, viewer Viewer) ([]model.OrderView, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, apperr.Persistence(err, "list orders")
	}
	return toViews(orders), nil
}

func (s *OrderQueryService) GetOrder(ctx context.Context, viewer Viewer, orderID int64) (*model.OrderView, error) {
	if _, err := requireAuthenticated(viewer); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, apperr.NotFound("order", orderID)
	}

	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrderRead(viewer, view); err != nil {
		return nil, err
	}
	return view, nil
}

// loadOrder 先讀快取, 快取錯誤只記 log 並改讀資料庫
func (s *OrderQueryService) loadOrder(ctx context.Context, orderID int64) (*model.OrderView, error) {
	log := logger.FromContext(ctx, s.logger)

	view, err := s.orderCache.GetOrder(ctx, orderID)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, redis_repo.ErrOrderCacheMiss) {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("read order cache failed")
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, apperr.NotFound("order", orderID)
		}
		return nil, apperr.Persistence(err, "get order %d", orderID)
	}

	// 只在沒有快取時寫入, 避免蓋掉 SetStatus 刷新的新狀態
	view = model.NewOrderView(order)
	if err := s.orderCache.FillOrder(ctx, view); err != nil {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("write order cache failed")
	}
	return view, nil
}

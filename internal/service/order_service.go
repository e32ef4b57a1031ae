package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model/event"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type IOrderService interface {
	// PlaceOrder 建立訂單並扣庫存, 全部在同一個交易內完成
	//
	// 參數:
	//   - viewer: 呼叫者, 訂單歸屬於 viewer
	//   - req: 購物車與收件資訊
	//
	// 返回值:
	//   - int64: 新訂單ID
	//
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 匿名呼叫, 或 viewer 對應的用戶不存在
	//   - apperr.ValidationCode 400: 購物車為空, 數量不合法, 缺少收件資訊
	//   - apperr.NotFoundCode 404: 商品不存在
	//   - *apperr.InsufficientStockError 409: 庫存不足
	//   - apperr.InternalErrorCode 500: 儲存層錯誤, 已 rollback
	PlaceOrder(ctx context.Context, viewer Viewer, req PlaceOrderRequest) (int64, error)
	// SetStatus 管理者修改訂單狀態, 只會更新 status 欄位
	//
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 匿名呼叫
	//   - apperr.ForbiddenCode 403: 非管理者
	//   - apperr.ValidationCode 400: 未知狀態或不允許的轉換
	//   - apperr.NotFoundCode 404: 訂單不存在
	SetStatus(ctx context.Context, viewer Viewer, orderID int64, status string) (model.OrderStatus, error)
}

type OrderService struct {
	store         db.Store
	orderCache    redis_repo.IOrderCacheRepository
	eventProducer producer.IOrderEventProducer
	logger        *zerolog.Logger
}

var _ IOrderService = (*OrderService)(nil)

func NewOrderService(
	store db.Store,
	orderCache redis_repo.IOrderCacheRepository,
	eventProducer producer.IOrderEventProducer,
	log *zerolog.Logger,
) *OrderService {
	if store == nil {
		panic("store cannot be nil")
	}
	if orderCache == nil {
		orderCache = redis_repo.NopOrderCacheRepo{}
	}
	if eventProducer == nil {
		eventProducer = producer.NopOrderEventProducer{}
	}
	return &OrderService{
		store:         store,
		orderCache:    orderCache,
		eventProducer: eventProducer,
		logger:        log,
	}
}

func (s *OrderService) log(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, s.logger)
}

func (s *OrderService) PlaceOrder(ctx context.Context, viewer Viewer, req PlaceOrderRequest) (int64, error) {
	userID, err := requireAuthenticated(viewer)
	if err != nil {
		return 0, err
	}

	req = req.normalize()
	if err := req.validate(); err != nil {
		return 0, err
	}

	order := &model.Order{
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   req.PaymentMethod,
		Status:          model.OrderStatusPending,
	}

	err = s.store.ExecTx(ctx, func(ctx context.Context, q db.Querier) error {
		if err := q.CreateOrder(ctx, order); err != nil {
			if errors.Is(err, db.ErrUserNotFound) {
				// token 有效但帳號已不存在
				return apperr.Unauthenticated("user %d does not exist", userID)
			}
			return apperr.Persistence(err, "create order")
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			item, err := reserveLine(ctx, q, order.ID, line)
			if err != nil {
				return err
			}
			total = total.Add(item.Subtotal())
			items = append(items, *item)
		}

		if err := q.UpdateOrderTotal(ctx, order.ID, total); err != nil {
			return apperr.Persistence(err, "update order %d total", order.ID)
		}
		order.TotalAmount = total
		order.Items = items
		return nil
	})
	if err != nil {
		return 0, err
	}

	if req.DeclaredTotal != nil && !req.DeclaredTotal.Equal(order.TotalAmount) {
		s.log(ctx).Warn().
			Int64("order_id", order.ID).
			Str("declared_total", req.DeclaredTotal.String()).
			Str("total", order.TotalAmount.String()).
			Msg("declared total differs from catalog total")
	}

	if err := s.eventProducer.Produce(ctx, event.NewOrderPlacedEvent(order)); err != nil {
		s.log(ctx).Error().Err(err).Int64("order_id", order.ID).Msg("publish order placed event failed")
	}

	return order.ID, nil
}

// reserveLine 讀價格, 檢查並扣庫存, 寫入明細
// 價格以交易內讀到的 catalog 價格為準
func reserveLine(ctx context.Context, q db.Querier, orderID int64, line model.CartLine) (*model.OrderItem, error) {
	ps, err := q.GetPriceAndStock(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, apperr.NotFound("product", line.ProductID)
		}
		return nil, apperr.Persistence(err, "read product %d", line.ProductID)
	}
	if ps.Stock < line.Quantity {
		return nil, apperr.InsufficientStock(line.ProductID, ps.Stock, line.Quantity)
	}

	ok, err := q.DeductProductStock(ctx, line.ProductID, line.Quantity)
	if err != nil {
		return nil, apperr.Persistence(err, "deduct stock of product %d", line.ProductID)
	}
	if !ok {
		// 讀取後被其他交易扣走
		available := 0
		if latest, err := q.GetPriceAndStock(ctx, line.ProductID); err == nil {
			available = latest.Stock
		}
		return nil, apperr.InsufficientStock(line.ProductID, available, line.Quantity)
	}

	item := &model.OrderItem{
		OrderID:   orderID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Price:     ps.Price,
	}
	if err := q.CreateOrderItem(ctx, item); err != nil {
		return nil, apperr.Persistence(err, "create order item for product %d", line.ProductID)
	}
	return item, nil
}

func (s *OrderService) SetStatus(ctx context.Context, viewer Viewer, orderID int64, status string) (model.OrderStatus, error) {
	if err := requireAdmin(viewer); err != nil {
		return "", err
	}

	next, err := model.ParseOrderStatus(status)
	if err != nil {
		return "", apperr.Validation("%v", err)
	}
	if orderID <= 0 {
		return "", apperr.NotFound("order", orderID)
	}

	var from model.OrderStatus
	err = s.store.ExecTx(ctx, func(ctx context.Context, q db.Querier) error {
		current, err := q.LockOrderStatus(ctx, orderID)
		if err != nil {
			if errors.Is(err, db.ErrOrderNotFound) {
				return apperr.NotFound("order", orderID)
			}
			return apperr.Persistence(err, "read order %d status", orderID)
		}
		if !model.CanTransition(current, next) {
			return apperr.Validation("order %d cannot move from %s to %s", orderID, current, next)
		}
		from = current

		if err := q.UpdateOrderStatus(ctx, orderID, next); err != nil {
			if errors.Is(err, db.ErrOrderNotFound) {
				return apperr.NotFound("order", orderID)
			}
			return apperr.Persistence(err, "update order %d status", orderID)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.refreshOrderCache(ctx, orderID)
	if err := s.eventProducer.Produce(ctx, event.NewOrderStatusChangedEvent(orderID, from, next)); err != nil {
		s.log(ctx).Error().Err(err).Int64("order_id", orderID).Msg("publish order status changed event failed")
	}

	return next, nil
}

// refreshOrderCache commit 後以最新資料覆蓋快取, 失敗時改為刪除
func (s *OrderService) refreshOrderCache(ctx context.Context, orderID int64) {
	log := s.log(ctx)

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err == nil {
		if err = s.orderCache.SetOrder(ctx, model.NewOrderView(order)); err == nil {
			return
		}
	}
	log.Warn().Err(err).Int64("order_id", orderID).Msg("refresh order cache failed")

	if err := s.orderCache.DeleteOrder(ctx, orderID); err != nil {
		log.Warn().Err(err).Int64("order_id", orderID).Msg("invalidate order cache failed")
	}
}

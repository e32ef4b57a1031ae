package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單, 不連帶寫入明細
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("create order of user %d: %w", order.UserID, ErrUserNotFound)
	}
	return err
}

// 新增訂單項目
func (s *OrderRepo) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// Update - 更新訂單金額
func (s *OrderRepo) UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("total_amount", total)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderRepo) LockOrderStatus(ctx context.Context, id int64) (model.OrderStatus, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "status").
		Where("id = ?", id).
		Take(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return order.Status, nil
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_items.id")
		}).
		Preload("Items.Product", func(tx *gorm.DB) *gorm.DB {
			// 商品刪除後, 歷史訂單仍要顯示名稱與圖片
			return tx.Unscoped()
		})
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := preloadItems(s.db.WithContext(ctx)).
		Preload("User").
		Where("id = ?", id).
		Take(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) ListOrdersByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := preloadItems(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := preloadItems(s.db.WithContext(ctx)).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

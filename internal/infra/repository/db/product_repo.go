package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create - 創建分類
func (s *ProductRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *ProductRepo) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Omit("Category").Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Read - 商品ID是否已被使用, 含軟刪除
func (s *ProductRepo) ProductExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Unscoped().Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Read - 下單用, 只取價格與庫存
func (s *ProductRepo) GetPriceAndStock(ctx context.Context, id int64) (*model.PriceStock, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Select("id", "price", "stock").Where("id = ?", id).Take(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &model.PriceStock{
		ProductID: product.ID,
		Price:     product.Price,
		Stock:     product.Stock,
	}, nil
}

// Update - 減少庫存
// 條件寫在 WHERE, 兩筆交易同時扣同一商品時後到者會看到已扣過的值
func (s *ProductRepo) DeductProductStock(ctx context.Context, id int64, quantity int) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		if IsCheckViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Update - 更新價格, 已成立訂單的明細價格不受影響
func (s *ProductRepo) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("price", price)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Update - 更新庫存
func (s *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete - 軟刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

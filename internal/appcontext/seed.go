package appcontext

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// sequenceSyncer postgres 以指定 ID 寫入後需要推進序列
type sequenceSyncer interface {
	SyncSequences(ctx context.Context) error
}

// seedStore 冪等性, 已存在的 ID 會略過
func seedStore(ctx context.Context, store db.Store, seed *config.SeedConfig) error {
	err := store.ExecTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, u := range seed.Users {
			if err := seedUser(ctx, q, u); err != nil {
				return err
			}
		}
		for _, c := range seed.Categories {
			if err := seedCategory(ctx, q, c); err != nil {
				return err
			}
		}
		for _, p := range seed.Products {
			if err := seedProduct(ctx, q, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if syncer, ok := store.(sequenceSyncer); ok {
		return syncer.SyncSequences(ctx)
	}
	return nil
}

func seedUser(ctx context.Context, q db.Querier, u config.SeedUser) error {
	_, err := q.GetUserByID(ctx, u.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return err
	}

	role := model.Role(u.Role)
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.IsValid() {
		return fmt.Errorf("seed user %d: invalid role %q", u.ID, u.Role)
	}
	return q.CreateUser(ctx, &model.User{ID: u.ID, Username: u.Username, Email: u.Email, Role: role})
}

func seedCategory(ctx context.Context, q db.Querier, c config.SeedCategory) error {
	_, err := q.GetCategoryByID(ctx, c.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrCategoryNotFound) {
		return err
	}

	category := &model.Category{ID: c.ID, Name: c.Name}
	if c.Description != "" {
		category.Description = &c.Description
	}
	return q.CreateCategory(ctx, category)
}

// 已軟刪除的商品也算存在, 不重新建立
func seedProduct(ctx context.Context, q db.Querier, p config.SeedProduct) error {
	exists, err := q.ProductExists(ctx, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("seed product %d: invalid price %q: %w", p.ID, p.Price, err)
	}
	product := &model.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    price,
		Stock:    p.Stock,
		Featured: p.Featured,
	}
	if p.CategoryID != 0 {
		product.CategoryID = &p.CategoryID
	}
	if p.ImageURL != "" {
		product.ImageURL = &p.ImageURL
	}

	return q.CreateProduct(ctx, product)
}

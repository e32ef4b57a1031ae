package service

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
)

// Viewer 呼叫者身分, 只有三種: Anonymous, Customer, Admin
type Viewer interface {
	// UserID 匿名者回傳 false
	UserID() (int64, bool)
	IsAdmin() bool
}

type Anonymous struct{}

func (Anonymous) UserID() (int64, bool) { return 0, false }
func (Anonymous) IsAdmin() bool         { return false }

type Customer struct {
	ID int64
}

func (c Customer) UserID() (int64, bool) { return c.ID, true }
func (Customer) IsAdmin() bool           { return false }

type Admin struct {
	ID int64
}

func (a Admin) UserID() (int64, bool) { return a.ID, true }
func (Admin) IsAdmin() bool           { return true }

// NewViewer 未知角色視為匿名
func NewViewer(userID int64, role model.Role) Viewer {
	if userID <= 0 {
		return Anonymous{}
	}
	switch role {
	case model.RoleAdmin:
		return Admin{ID: userID}
	case model.RoleCustomer:
		return Customer{ID: userID}
	default:
		return Anonymous{}
	}
}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, constants.ViewerKey, v)
}

// ViewerFromContext 沒有設置時回傳 Anonymous
func ViewerFromContext(ctx context.Context) Viewer {
	if v, ok := ctx.Value(constants.ViewerKey).(Viewer); ok && v != nil {
		return v
	}
	return Anonymous{}
}

func requireAuthenticated(v Viewer) (int64, error) {
	id, ok := v.UserID()
	if !ok {
		return 0, apperr.Unauthenticated("login required")
	}
	return id, nil
}

func requireAdmin(v Viewer) error {
	if _, err := requireAuthenticated(v); err != nil {
		return err
	}
	if !v.IsAdmin() {
		return apperr.Forbidden("admin role required")
	}
	return nil
}

// authorizeOrderRead 所有讀取訂單的入口都經過這裡
// 非本人且非管理者一律回 NotFound, 不透露訂單是否存在
func authorizeOrderRead(v Viewer, view *model.OrderView) error {
	userID, err := requireAuthenticated(v)
	if err != nil {
		return err
	}
	if v.IsAdmin() || view.UserID == userID {
		return nil
	}
	return apperr.NotFound("order", view.ID)
}

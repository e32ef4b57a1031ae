package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/memdb"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixture 記憶體 store 加上一位顧客, 一位管理者與兩個商品
type fixture struct {
	store    *memdb.Store
	customer *model.User
	other    *model.User
	admin    *model.User
	keyboard *model.Product
	mouse    *model.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: memdb.NewStore()}

	f.customer = &model.User{Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer}
	f.other = &model.User{Username: "bob", Email: "bob@example.com", Role: model.RoleCustomer}
	f.admin = &model.User{Username: "root", Email: "root@example.com", Role: model.RoleAdmin}
	for _, u := range []*model.User{f.customer, f.other, f.admin} {
		require.NoError(t, f.store.CreateUser(ctx, u))
	}

	image := "https://img.example.com/keyboard.png"
	f.keyboard = &model.Product{Name: "Keyboard", Price: decimal.RequireFromString("100"), Stock: 5, ImageURL: &image}
	f.mouse = &model.Product{Name: "Mouse", Price: decimal.RequireFromString("25.50"), Stock: 10}
	for _, p := range []*model.Product{f.keyboard, f.mouse} {
		require.NoError(t, f.store.CreateProduct(ctx, p))
	}
	return f
}

func (f *fixture) customerViewer() Viewer { return Customer{ID: f.customer.ID} }
func (f *fixture) otherViewer() Viewer    { return Customer{ID: f.other.ID} }
func (f *fixture) adminViewer() Viewer    { return Admin{ID: f.admin.ID} }

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.store, nil, nil, logger.Nop())
}

func (f *fixture) queryService() *OrderQueryService {
	return NewOrderQueryService(f.store, nil, logger.Nop())
}

func (f *fixture) stockOf(t *testing.T, productID int64) int {
	t.Helper()
	ps, err := f.store.GetPriceAndStock(context.Background(), productID)
	require.NoError(t, err)
	return ps.Stock
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	orders, err := f.store.ListOrders(context.Background())
	require.NoError(t, err)
	return len(orders)
}

func validRequest(lines ...model.CartLine) PlaceOrderRequest {
	return PlaceOrderRequest{
		Items:           lines,
		ShippingAddress: "1 Main St",
		PhoneNumber:     "555-0100",
	}
}

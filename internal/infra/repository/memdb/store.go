package memdb

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// Store 記憶體版持久層, STORE_DRIVER=memory 時使用
// 交易持有整個 store 的寫鎖, 交易之間完全序列化
type Store struct {
	mu sync.RWMutex
	st *state
}

var _ db.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) ExecTx(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) (err error) {
	txCtx := context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.st.clone()
	err = fn(txCtx, &queries{st: working})
	if err != nil {
		return err
	}
	s.st = working
	return nil
}

func (s *Store) Close() error {
	return nil
}

func read[T any](s *Store, fn func(q *queries) (T, error)) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&queries{st: s.st})
}

func (s *Store) write(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	return s.ExecTx(ctx, fn)
}

func (s *Store) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.CreateCategory(ctx, category)
	})
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return read(s, func(q *queries) (*model.Category, error) { return q.GetCategoryByID(ctx, id) })
}

func (s *Store) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.CreateProduct(ctx, product)
	})
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	return read(s, func(q *queries) (*model.Product, error) { return q.GetProductByID(ctx, id) })
}

func (s *Store) ProductExists(ctx context.Context, id int64) (bool, error) {
	return read(s, func(q *queries) (bool, error) { return q.ProductExists(ctx, id) })
}

func (s *Store) GetPriceAndStock(ctx context.Context, id int64) (*model.PriceStock, error) {
	return read(s, func(q *queries) (*model.PriceStock, error) { return q.GetPriceAndStock(ctx, id) })
}

func (s *Store) DeductProductStock(ctx context.Context, id int64, quantity int) (ok bool, err error) {
	err = s.write(ctx, func(ctx context.Context, q db.Querier) error {
		ok, err = q.DeductProductStock(ctx, id, quantity)
		return err
	})
	return ok, err
}

func (s *Store) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.UpdateProductPrice(ctx, id, price)
	})
}

func (s *Store) UpdateStock(ctx context.Context, id int64, stock int) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.UpdateStock(ctx, id, stock)
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.DeleteProduct(ctx, id)
	})
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.CreateUser(ctx, user)
	})
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return read(s, func(q *queries) (*model.User, error) { return q.GetUserByID(ctx, id) })
}

func (s *Store) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.CreateOrder(ctx, order)
	})
}

func (s *Store) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.CreateOrderItem(ctx, item)
	})
}

func (s *Store) UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.UpdateOrderTotal(ctx, id, total)
	})
}

func (s *Store) LockOrderStatus(ctx context.Context, id int64) (model.OrderStatus, error) {
	return read(s, func(q *queries) (model.OrderStatus, error) { return q.LockOrderStatus(ctx, id) })
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	return s.write(ctx, func(ctx context.Context, q db.Querier) error {
		return q.UpdateOrderStatus(ctx, id, status)
	})
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	return read(s, func(q *queries) (*model.Order, error) { return q.GetOrderByID(ctx, id) })
}

func (s *Store) ListOrdersByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	return read(s, func(q *queries) ([]model.Order, error) { return q.ListOrdersByUserID(ctx, userID) })
}

func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return read(s, func(q *queries) ([]model.Order, error) { return q.ListOrders(ctx) })
}

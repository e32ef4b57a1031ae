package memdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// queries 直接操作 state, 呼叫端負責鎖
type queries struct {
	st *state
}

var _ db.Querier = (*queries)(nil)

func now() time.Time {
	return time.Now().UTC()
}

func (q *queries) CreateCategory(_ context.Context, category *model.Category) error {
	for _, c := range q.st.categories {
		if c.Name == category.Name {
			return fmt.Errorf("category %q already exists", category.Name)
		}
	}
	if _, ok := q.st.categories[category.ID]; ok && category.ID != 0 {
		return fmt.Errorf("category %d already exists", category.ID)
	}
	category.ID = nextID(&q.st.seq.category, category.ID)
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt
	q.st.categories[category.ID] = *category
	return nil
}

func (q *queries) GetCategoryByID(_ context.Context, id int64) (*model.Category, error) {
	c, ok := q.st.categories[id]
	if !ok || c.DeletedAt.Valid {
		return nil, db.ErrCategoryNotFound
	}
	return &c, nil
}

func (q *queries) CreateProduct(_ context.Context, product *model.Product) error {
	if product.Stock < 0 {
		return fmt.Errorf("product stock must not be negative")
	}
	if _, ok := q.st.products[product.ID]; ok && product.ID != 0 {
		return fmt.Errorf("product %d already exists", product.ID)
	}
	if product.CategoryID != nil {
		if _, ok := q.st.categories[*product.CategoryID]; !ok {
			return fmt.Errorf("category %d not found", *product.CategoryID)
		}
	}
	product.ID = nextID(&q.st.seq.product, product.ID)
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	stored.Category = nil
	q.st.products[product.ID] = stored
	return nil
}

func (q *queries) ProductExists(_ context.Context, id int64) (bool, error) {
	_, ok := q.st.products[id]
	return ok, nil
}

// liveProduct 已軟刪除視為不存在
func (q *queries) liveProduct(id int64) (model.Product, bool) {
	p, ok := q.st.products[id]
	if !ok || p.DeletedAt.Valid {
		return model.Product{}, false
	}
	return p, true
}

func (q *queries) GetProductByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := q.liveProduct(id)
	if !ok {
		return nil, db.ErrProductNotFound
	}
	if p.CategoryID != nil {
		if c, ok := q.st.categories[*p.CategoryID]; ok {
			p.Category = &c
		}
	}
	return &p, nil
}

func (q *queries) GetPriceAndStock(_ context.Context, id int64) (*model.PriceStock, error) {
	p, ok := q.liveProduct(id)
	if !ok {
		return nil, db.ErrProductNotFound
	}
	return &model.PriceStock{ProductID: p.ID, Price: p.Price, Stock: p.Stock}, nil
}

func (q *queries) DeductProductStock(_ context.Context, id int64, quantity int) (bool, error) {
	p, ok := q.liveProduct(id)
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	q.st.products[id] = p
	return true, nil
}

func (q *queries) UpdateProductPrice(_ context.Context, id int64, price decimal.Decimal) error {
	p, ok := q.liveProduct(id)
	if !ok {
		return db.ErrProductNotFound
	}
	p.Price = price
	p.UpdatedAt = now()
	q.st.products[id] = p
	return nil
}

func (q *queries) UpdateStock(_ context.Context, id int64, stock int) error {
	p, ok := q.liveProduct(id)
	if !ok {
		return db.ErrProductNotFound
	}
	if stock < 0 {
		return fmt.Errorf("product stock must not be negative")
	}
	p.Stock = stock
	p.UpdatedAt = now()
	q.st.products[id] = p
	return nil
}

func (q *queries) DeleteProduct(_ context.Context, id int64) error {
	p, ok := q.liveProduct(id)
	if !ok {
		return db.ErrProductNotFound
	}
	p.DeletedAt = gorm.DeletedAt{Time: now(), Valid: true}
	q.st.products[id] = p
	return nil
}

func (q *queries) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range q.st.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %q already registered", user.Email)
		}
	}
	if _, ok := q.st.users[user.ID]; ok && user.ID != 0 {
		return fmt.Errorf("user %d already exists", user.ID)
	}
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	user.ID = nextID(&q.st.seq.user, user.ID)
	user.CreatedAt = now()
	q.st.users[user.ID] = *user
	return nil
}

func (q *queries) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := q.st.users[id]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return &u, nil
}

func (q *queries) CreateOrder(_ context.Context, order *model.Order) error {
	if _, ok := q.st.users[order.UserID]; !ok {
		return fmt.Errorf("create order of user %d: %w", order.UserID, db.ErrUserNotFound)
	}
	order.ID = nextID(&q.st.seq.order, 0)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now()
	}
	stored := *order
	stored.User = nil
	stored.Items = nil
	q.st.orders[order.ID] = stored
	return nil
}

func (q *queries) CreateOrderItem(_ context.Context, item *model.OrderItem) error {
	if _, ok := q.st.orders[item.OrderID]; !ok {
		return fmt.Errorf("order %d not found", item.OrderID)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("order item quantity must be positive")
	}
	item.ID = nextID(&q.st.seq.item, 0)
	stored := *item
	stored.Product = nil
	q.st.items[item.ID] = stored
	return nil
}

func (q *queries) UpdateOrderTotal(_ context.Context, id int64, total decimal.Decimal) error {
	o, ok := q.st.orders[id]
	if !ok {
		return db.ErrOrderNotFound
	}
	o.TotalAmount = total
	q.st.orders[id] = o
	return nil
}

// LockOrderStatus 交易期間已持有整個 store 的寫鎖
func (q *queries) LockOrderStatus(_ context.Context, id int64) (model.OrderStatus, error) {
	o, ok := q.st.orders[id]
	if !ok {
		return "", db.ErrOrderNotFound
	}
	return o.Status, nil
}

func (q *queries) UpdateOrderStatus(_ context.Context, id int64, status model.OrderStatus) error {
	o, ok := q.st.orders[id]
	if !ok {
		return db.ErrOrderNotFound
	}
	o.Status = status
	q.st.orders[id] = o
	return nil
}

// withItems 帶入明細與商品(含已刪除)
func (q *queries) withItems(o model.Order) model.Order {
	o.Items = []model.OrderItem{}
	for _, item := range q.st.items {
		if item.OrderID != o.ID {
			continue
		}
		if p, ok := q.st.products[item.ProductID]; ok {
			item.Product = &p
		}
		o.Items = append(o.Items, item)
	}
	sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ID < o.Items[j].ID })
	return o
}

func (q *queries) withUser(o model.Order) model.Order {
	if u, ok := q.st.users[o.UserID]; ok {
		o.User = &u
	}
	return o
}

func (q *queries) GetOrderByID(_ context.Context, id int64) (*model.Order, error) {
	o, ok := q.st.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	o = q.withUser(q.withItems(o))
	return &o, nil
}

func newestFirst(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
}

func (q *queries) ListOrdersByUserID(_ context.Context, userID int64) ([]model.Order, error) {
	orders := []model.Order{}
	for _, o := range q.st.orders {
		if o.UserID == userID {
			orders = append(orders, q.withItems(o))
		}
	}
	newestFirst(orders)
	return orders, nil
}

func (q *queries) ListOrders(_ context.Context) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(q.st.orders))
	for _, o := range q.st.orders {
		orders = append(orders, q.withUser(q.withItems(o)))
	}
	newestFirst(orders)
	return orders, nil
}

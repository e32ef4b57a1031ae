package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ICatalogRepository 下單時讀取價格與扣庫存
// 需透過 ExecTx 取得的 Querier 呼叫, 讀取才會與後續寫入在同一個交易
type ICatalogRepository interface {
	// GetPriceAndStock 錯誤:
	//   - ErrProductNotFound: 商品不存在或已刪除
	GetPriceAndStock(ctx context.Context, productID int64) (*model.PriceStock, error)
	// DeductProductStock 條件式扣庫存 (stock >= quantity 才會扣)
	// 回傳 false 代表庫存不足或商品不存在, 沒有任何資料被修改
	DeductProductStock(ctx context.Context, productID int64, quantity int) (bool, error)
}

type IProductRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, categoryID int64) (*model.Category, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID int64) (*model.Product, error)
	// ProductExists 包含已軟刪除的商品
	ProductExists(ctx context.Context, productID int64) (bool, error)
	UpdateProductPrice(ctx context.Context, productID int64, price decimal.Decimal) error
	// UpdateStock 管理者直接覆寫庫存, 與下單扣庫存為 last-writer-wins
	UpdateStock(ctx context.Context, productID int64, stock int) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

type IOrderRepository interface {
	// CreateOrder 只建立訂單本身, 明細由 CreateOrderItem 逐筆建立
	// 錯誤:
	//   - ErrUserNotFound: 下單用戶不存在
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderItem(ctx context.Context, item *model.OrderItem) error
	UpdateOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	// LockOrderStatus 讀取並鎖定訂單狀態直到交易結束
	LockOrderStatus(ctx context.Context, orderID int64) (model.OrderStatus, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// GetOrderByID 帶入明細, 明細商品(含已刪除)與下單用戶
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	// ListOrdersByUserID 新到舊
	ListOrdersByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// ListOrders 新到舊, 帶入下單用戶
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type Querier interface {
	ICatalogRepository
	IProductRepository
	IUserRepository
	IOrderRepository
}

// Store 持久層, ExecTx 內所有操作一起 commit 或 rollback
type Store interface {
	Querier
	// ExecTx fn 回傳錯誤或 panic 時 rollback
	// 交易不受呼叫端 ctx 取消影響, 一旦開始就會執行到 commit 或 rollback
	ExecTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
	Close() error
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView 查詢用, 明細已帶入商品名稱與圖片
type OrderView struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Username        string          `json:"username,omitempty"`
	Email           string          `json:"email,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	PhoneNumber     string          `json:"phone_number"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderLineView `json:"items"`
}

type OrderLineView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ProductName string          `json:"product_name"`
	ImageURL    *string         `json:"image_url"`
}

// NewOrderView 商品已不存在時名稱留空
func NewOrderView(order *Order) *OrderView {
	view := &OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		PhoneNumber:     order.PhoneNumber,
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		Items:           make([]OrderLineView, 0, len(order.Items)),
	}
	if order.User != nil {
		view.Username = order.User.Username
		view.Email = order.User.Email
	}
	for _, item := range order.Items {
		line := OrderLineView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ImageURL = item.Product.ImageURL
		}
		view.Items = append(view.Items, line)
	}
	return view
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"

	DefaultPaymentMethod = PaymentCashOnDelivery
)

func (p PaymentMethod) IsValid() bool {
	return p == PaymentCashOnDelivery
}

// 訂單建立後只有 Status 會變動
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	ShippingAddress string          `gorm:"not null;type:text" json:"shipping_address"`
	PhoneNumber     string          `gorm:"not null;type:varchar(30)" json:"phone_number"`
	PaymentMethod   PaymentMethod   `gorm:"not null;type:varchar(30);default:cash_on_delivery" json:"payment_method"`
	Status          OrderStatus     `gorm:"not null;type:varchar(20);default:pending" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem 訂單明細, Price 為下單當下的商品價格
// ProductID 不建立外鍵, 商品刪除後明細仍保留
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:-" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
}

// Subtotal price * quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartLine 購物車內的一筆商品, 價格一律以 catalog 為準
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

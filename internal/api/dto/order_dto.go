package dto

import (
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

type CartLineDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderDTO struct {
	Items           []CartLineDTO    `json:"items"`
	ShippingAddress string           `json:"shipping_address"`
	PhoneNumber     string           `json:"phone_number"`
	PaymentMethod   string           `json:"payment_method"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
}

func (d PlaceOrderDTO) CartLines() []model.CartLine {
	lines := make([]model.CartLine, 0, len(d.Items))
	for _, item := range d.Items {
		lines = append(lines, model.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

type PlaceOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	OrderID int64             `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
}

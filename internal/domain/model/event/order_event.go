package event

import (
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	BaseEvent
	OrderID       int64               `json:"order_id"`
	UserID        int64               `json:"user_id"`
	Items         []model.OrderItem   `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Status        model.OrderStatus   `json:"status"`
}

func NewOrderPlacedEvent(order *model.Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent:     NewBaseEvent(OrderPlacedEventName, order.ID),
		OrderID:       order.ID,
		UserID:        order.UserID,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    int64             `json:"order_id"`
	FromStatus model.OrderStatus `json:"from_status"`
	ToStatus   model.OrderStatus `json:"to_status"`
}

func NewOrderStatusChangedEvent(orderID int64, from, to model.OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent:  NewBaseEvent(OrderStatusChangedEventName, orderID),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
	}
}

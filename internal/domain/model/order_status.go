package model

import "fmt"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	for _, v := range orderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status %q, must be one of %v", s, orderStatuses)
	}
	return status, nil
}

// CanTransition 狀態轉換檢查
// 目前允許五種狀態間任意轉換(含倒退), 若要限制為只能往前, 只需修改此函式
func CanTransition(from, to OrderStatus) bool {
	return from.IsValid() && to.IsValid()
}

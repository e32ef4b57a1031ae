package service

import (
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest DeclaredTotal 為前端顯示的金額, 只用來比對, 不會寫入
type PlaceOrderRequest struct {
	Items           []model.CartLine
	ShippingAddress string
	PhoneNumber     string
	PaymentMethod   model.PaymentMethod
	DeclaredTotal   *decimal.Decimal
}

// normalize 回傳去除空白並補上預設付款方式的副本
func (r PlaceOrderRequest) normalize() PlaceOrderRequest {
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.PaymentMethod = model.PaymentMethod(strings.TrimSpace(string(r.PaymentMethod)))
	if r.PaymentMethod == "" {
		r.PaymentMethod = model.DefaultPaymentMethod
	}
	return r
}

func (r PlaceOrderRequest) validate() error {
	if len(r.Items) == 0 {
		return apperr.Validation("cart is empty")
	}
	for i, line := range r.Items {
		if line.ProductID <= 0 {
			return apperr.Validation("items[%d]: invalid product id %d", i, line.ProductID)
		}
		if line.Quantity <= 0 {
			return apperr.Validation("items[%d]: quantity must be positive", i)
		}
	}
	if r.ShippingAddress == "" {
		return apperr.Validation("shipping address is required")
	}
	if r.PhoneNumber == "" {
		return apperr.Validation("phone number is required")
	}
	if !r.PaymentMethod.IsValid() {
		return apperr.Validation("unsupported payment method %q", r.PaymentMethod)
	}
	return nil
}

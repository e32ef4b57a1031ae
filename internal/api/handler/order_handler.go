package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/response"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService      service.IOrderService
	orderQueryService service.IOrderQueryService
}

func NewOrderHandler(orderService service.IOrderService, orderQueryService service.IOrderQueryService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	if orderQueryService == nil {
		panic("orderQueryService cannot be nil")
	}
	return &OrderHandler{
		orderService:      orderService,
		orderQueryService: orderQueryService,
	}
}

func orderIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid order id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, apperr.Validation("invalid request body"))
		return
	}

	ctx := r.Context()
	orderID, err := h.orderService.PlaceOrder(ctx, service.ViewerFromContext(ctx), service.PlaceOrderRequest{
		Items:           req.CartLines(),
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		DeclaredTotal:   req.TotalAmount,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	response.SuccessJSON(w, http.StatusCreated, dto.PlaceOrderResponse{OrderID: orderID})
}

// GET /api/v1/orders/my-orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views, err := h.orderQueryService.ListOrdersForUser(ctx, service.ViewerFromContext(ctx))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, views)
}

// GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views, err := h.orderQueryService.ListAllOrders(ctx, service.ViewerFromContext(ctx))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, views)
}

// GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	ctx := r.Context()
	view, err := h.orderQueryService.GetOrder(ctx, service.ViewerFromContext(ctx), orderID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, view)
}

// PATCH /api/v1/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, apperr.Validation("invalid request body"))
		return
	}

	ctx := r.Context()
	status, err := h.orderService.SetStatus(ctx, service.ViewerFromContext(ctx), orderID, req.Status)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, dto.UpdateStatusResponse{OrderID: orderID, Status: status})
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model/event"
	mock_producer "github.com/RoyceAzure/lab/storefront/internal/infra/producer/mock"
	mock_redis_repo "github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo/mock"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 2},
	))
	require.NoError(t, err)
	require.NotZero(t, orderID)

	require.Equal(t, 3, f.stockOf(t, f.keyboard.ID))

	order, err := f.store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, f.customer.ID, order.UserID)
	require.Equal(t, model.OrderStatusPending, order.Status)
	require.Equal(t, model.PaymentCashOnDelivery, order.PaymentMethod)
	require.True(t, decimal.RequireFromString("200").Equal(order.TotalAmount))
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.True(t, decimal.RequireFromString("100").Equal(order.Items[0].Price))
}

func TestPlaceOrderMultipleLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.mouse.ID, Quantity: 3},
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	order, err := f.store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	// 25.50*3 + 100
	require.True(t, decimal.RequireFromString("176.50").Equal(order.TotalAmount))
	require.Equal(t, f.mouse.ID, order.Items[0].ProductID)
	require.Equal(t, 7, f.stockOf(t, f.mouse.ID))
	require.Equal(t, 4, f.stockOf(t, f.keyboard.ID))
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderService().PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 10},
	))
	require.Error(t, err)

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, f.keyboard.ID, stockErr.ProductID)
	require.Equal(t, 5, stockErr.Available)
	require.Equal(t, 10, stockErr.Requested)

	require.Equal(t, 5, f.stockOf(t, f.keyboard.ID))
	require.Equal(t, 0, f.orderCount(t))
}

func TestPlaceOrderMissingProductRollsBack(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderService().PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
		model.CartLine{ProductID: 999, Quantity: 1},
	))
	require.Error(t, err)
	require.ErrorIs(t, err, apperr.NotFound("product", 999))

	require.Equal(t, 5, f.stockOf(t, f.keyboard.ID))
	require.Equal(t, 0, f.orderCount(t))
}

func TestPlaceOrderDeletedProduct(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.DeleteProduct(context.Background(), f.mouse.ID))

	_, err := f.orderService().PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.mouse.ID, Quantity: 1},
	))
	require.ErrorIs(t, err, apperr.NotFound("product", f.mouse.ID))
}

func TestPlaceOrderConcurrent(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(context.Background(), f.customerViewer(), validRequest(
				model.CartLine{ProductID: f.keyboard.ID, Quantity: 3},
			))
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if apperr.CodeOf(err) == apperr.InsufficientStockCode {
			insufficient++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, insufficient)
	require.Equal(t, 2, f.stockOf(t, f.keyboard.ID))
	require.Equal(t, 1, f.orderCount(t))
}

func TestPlaceOrderManyConcurrentNeverOversells(t *testing.T) {
	f := newFixture(t)
	svc := f.orderService()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), f.customerViewer(), validRequest(
				model.CartLine{ProductID: f.mouse.ID, Quantity: 1},
			))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, succeeded)
	require.Equal(t, 0, f.stockOf(t, f.mouse.ID))
}

func TestPlaceOrderPriceCapture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, f.store.UpdateProductPrice(ctx, f.keyboard.ID, decimal.RequireFromString("999")))

	view, err := f.queryService().GetOrder(ctx, f.customerViewer(), orderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("100").Equal(view.Items[0].Price))
	require.True(t, decimal.RequireFromString("100").Equal(view.TotalAmount))
}

func TestPlaceOrderIgnoresDeclaredTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	declared := decimal.RequireFromString("1")
	req := validRequest(model.CartLine{ProductID: f.keyboard.ID, Quantity: 1})
	req.DeclaredTotal = &declared

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), req)
	require.NoError(t, err)

	order, err := f.store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("100").Equal(order.TotalAmount))
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)
	line := model.CartLine{ProductID: f.keyboard.ID, Quantity: 1}

	testCases := []struct {
		name   string
		mutate func(r *PlaceOrderRequest)
	}{
		{name: "empty cart", mutate: func(r *PlaceOrderRequest) { r.Items = nil }},
		{name: "zero quantity", mutate: func(r *PlaceOrderRequest) { r.Items = []model.CartLine{{ProductID: f.keyboard.ID, Quantity: 0}} }},
		{name: "negative quantity", mutate: func(r *PlaceOrderRequest) { r.Items = []model.CartLine{{ProductID: f.keyboard.ID, Quantity: -1}} }},
		{name: "invalid product id", mutate: func(r *PlaceOrderRequest) { r.Items = []model.CartLine{{ProductID: 0, Quantity: 1}} }},
		{name: "blank address", mutate: func(r *PlaceOrderRequest) { r.ShippingAddress = "   " }},
		{name: "blank phone", mutate: func(r *PlaceOrderRequest) { r.PhoneNumber = "" }},
		{name: "unknown payment method", mutate: func(r *PlaceOrderRequest) { r.PaymentMethod = "bitcoin" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(line)
			tc.mutate(&req)

			_, err := f.orderService().PlaceOrder(context.Background(), f.customerViewer(), req)
			require.Error(t, err)
			require.Equal(t, apperr.ValidationCode, apperr.CodeOf(err))
			require.Equal(t, 5, f.stockOf(t, f.keyboard.ID))
			require.Equal(t, 0, f.orderCount(t))
		})
	}
}

func TestPlaceOrderAnonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderService().PlaceOrder(context.Background(), Anonymous{}, validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.Equal(t, apperr.UnauthenticatedCode, apperr.CodeOf(err))
	require.Equal(t, 0, f.orderCount(t))
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// token 仍有效, 但用戶資料已不存在
	_, err := f.orderService().PlaceOrder(ctx, Customer{ID: f.admin.ID + 100}, validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.Equal(t, apperr.UnauthenticatedCode, apperr.CodeOf(err))
	require.Equal(t, 0, f.orderCount(t))

	ps, err := f.store.GetPriceAndStock(ctx, f.keyboard.ID)
	require.NoError(t, err)
	require.Equal(t, 5, ps.Stock)
}

func TestPlaceOrderAdminOrdersForSelf(t *testing.T) {
	f := newFixture(t)

	orderID, err := f.orderService().PlaceOrder(context.Background(), f.adminViewer(), validRequest(
		model.CartLine{ProductID: f.mouse.ID, Quantity: 1},
	))
	require.NoError(t, err)

	order, err := f.store.GetOrderByID(context.Background(), orderID)
	require.NoError(t, err)
	require.Equal(t, f.admin.ID, order.UserID)
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventProducer := mock_producer.NewMockIOrderEventProducer(ctrl)
	svc := NewOrderService(f.store, nil, eventProducer, logger.Nop())

	eventProducer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...event.Event) error {
			require.Len(t, events, 1)
			placed, ok := events[0].(*event.OrderPlacedEvent)
			require.True(t, ok)
			require.Equal(t, f.customer.ID, placed.UserID)
			require.True(t, decimal.RequireFromString("200").Equal(placed.TotalAmount))
			require.Len(t, placed.Items, 1)
			return nil
		})

	_, err := svc.PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 2},
	))
	require.NoError(t, err)
}

func TestPlaceOrderPublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventProducer := mock_producer.NewMockIOrderEventProducer(ctrl)
	eventProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	svc := NewOrderService(f.store, nil, eventProducer, logger.Nop())

	orderID, err := svc.PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)
	require.NotZero(t, orderID)
	require.Equal(t, 4, f.stockOf(t, f.keyboard.ID))
}

func TestPlaceOrderFailureDoesNotPublish(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventProducer := mock_producer.NewMockIOrderEventProducer(ctrl)
	eventProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Times(0)
	svc := NewOrderService(f.store, nil, eventProducer, logger.Nop())

	_, err := svc.PlaceOrder(context.Background(), f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 6},
	))
	require.Error(t, err)
}

func TestPlaceOrderSurvivesCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)
	require.NotZero(t, orderID)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.orderService()

	orderID, err := svc.PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	status, err := svc.SetStatus(ctx, f.adminViewer(), orderID, "shipped")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, status)

	_, err = svc.SetStatus(ctx, f.adminViewer(), orderID, "bogus")
	require.Equal(t, apperr.ValidationCode, apperr.CodeOf(err))

	order, err := f.store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, order.Status)
	require.True(t, decimal.RequireFromString("100").Equal(order.TotalAmount))
	require.Equal(t, "1 Main St", order.ShippingAddress)

	// 目前允許倒退
	status, err = svc.SetStatus(ctx, f.adminViewer(), orderID, "pending")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, status)
}

func TestSetStatusErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.orderService()

	orderID, err := svc.PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, f.customerViewer(), orderID, "shipped")
	require.Equal(t, apperr.ForbiddenCode, apperr.CodeOf(err))

	_, err = svc.SetStatus(ctx, Anonymous{}, orderID, "shipped")
	require.Equal(t, apperr.UnauthenticatedCode, apperr.CodeOf(err))

	_, err = svc.SetStatus(ctx, f.adminViewer(), orderID+100, "shipped")
	require.ErrorIs(t, err, apperr.NotFound("order", orderID+100))

	order, err := f.store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
}

func TestSetStatusRefreshesCacheAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	orderCache := mock_redis_repo.NewMockIOrderCacheRepository(ctrl)
	eventProducer := mock_producer.NewMockIOrderEventProducer(ctrl)
	svc := NewOrderService(f.store, orderCache, eventProducer, logger.Nop())

	gomock.InOrder(
		orderCache.EXPECT().SetOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *model.OrderView) error {
			require.Equal(t, orderID, v.ID)
			require.Equal(t, model.OrderStatusShipped, v.Status)
			require.Len(t, v.Items, 1)
			return nil
		}),
		eventProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil),
	)

	status, err := svc.SetStatus(ctx, f.adminViewer(), orderID, "shipped")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusShipped, status)
}

func TestSetStatusInvalidatesCacheWhenRefreshFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID, err := f.orderService().PlaceOrder(ctx, f.customerViewer(), validRequest(
		model.CartLine{ProductID: f.keyboard.ID, Quantity: 1},
	))
	require.NoError(t, err)

	orderCache := mock_redis_repo.NewMockIOrderCacheRepository(ctrl)
	eventProducer := mock_producer.NewMockIOrderEventProducer(ctrl)
	svc := NewOrderService(f.store, orderCache, eventProducer, logger.Nop())

	gomock.InOrder(
		orderCache.EXPECT().SetOrder(gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
		orderCache.EXPECT().DeleteOrder(gomock.Any(), orderID).Return(errors.New("redis down")),
		eventProducer.EXPECT().
			Produce(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...event.Event) error {
				changed, ok := events[0].(*event.OrderStatusChangedEvent)
				require.True(t, ok)
				require.Equal(t, model.OrderStatusPending, changed.FromStatus)
				require.Equal(t, model.OrderStatusDelivered, changed.ToStatus)
				return nil
			}),
	)

	status, err := svc.SetStatus(ctx, f.adminViewer(), orderID, "delivered")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusDelivered, status)
}

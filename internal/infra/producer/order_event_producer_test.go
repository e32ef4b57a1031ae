package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model/event"
	mock_producer "github.com/RoyceAzure/lab/storefront/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProduceOrderPlaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mock_producer.NewMockWriter(ctrl)
	p := NewOrderEventProducer(writer, 0)

	order := &model.Order{
		ID:            12,
		UserID:        3,
		TotalAmount:   decimal.RequireFromString("20.00"),
		PaymentMethod: model.DefaultPaymentMethod,
		Status:        model.OrderStatusPending,
	}

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			require.Equal(t, "12", string(msgs[0].Key))
			require.Equal(t, "event_type", msgs[0].Headers[0].Key)
			require.Equal(t, string(event.OrderPlacedEventName), string(msgs[0].Headers[0].Value))

			var got event.OrderPlacedEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			require.Equal(t, int64(12), got.OrderID)
			require.Equal(t, int64(3), got.UserID)
			require.True(t, order.TotalAmount.Equal(got.TotalAmount))
			return nil
		})

	require.NoError(t, p.Produce(context.Background(), event.NewOrderPlacedEvent(order)))
}

func TestProduceRetriesTemporaryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mock_producer.NewMockWriter(ctrl)
	p := NewOrderEventProducer(writer, 2)
	evt := event.NewOrderStatusChangedEvent(1, model.OrderStatusPending, model.OrderStatusShipped)

	gomock.InOrder(
		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.LeaderNotAvailable),
		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil),
	)

	require.NoError(t, p.Produce(context.Background(), evt))
}

func TestProduceStopsOnPermanentError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mock_producer.NewMockWriter(ctrl)
	p := NewOrderEventProducer(writer, 3)
	errBroken := errors.New("broken pipe")

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errBroken).Times(1)

	err := p.Produce(context.Background(), event.NewOrderStatusChangedEvent(1, model.OrderStatusPending, model.OrderStatusCancelled))
	require.ErrorIs(t, err, errBroken)
}

func TestProduceAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := mock_producer.NewMockWriter(ctrl)
	writer.EXPECT().Close().Return(nil).Times(1)

	p := NewOrderEventProducer(writer, 0)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Produce(context.Background(), event.NewOrderStatusChangedEvent(1, model.OrderStatusPending, model.OrderStatusShipped))
	require.ErrorIs(t, err, ErrProducerClosed)
}

func TestProduceNoEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewOrderEventProducer(mock_producer.NewMockWriter(ctrl), 0)
	require.NoError(t, p.Produce(context.Background()))
}

func TestConfigValidate(t *testing.T) {
	require.Error(t, DefaultConfig(nil, "topic").Validate())
	require.Error(t, DefaultConfig([]string{"localhost:9092"}, "").Validate())
	require.NoError(t, DefaultConfig([]string{"localhost:9092"}, "topic").Validate())
}

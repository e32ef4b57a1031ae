package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

// IOrderEventProducer 訂單交易 commit 後發布事件
type IOrderEventProducer interface {
	Produce(ctx context.Context, events ...event.Event) error
	Close() error
}

// OrderEventProducer topic 由 writer 設置, key 為訂單ID
type OrderEventProducer struct {
	writer        Writer
	retryAttempts int
	closed        atomic.Bool
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)

func NewOrderEventProducer(writer Writer, retryAttempts int) *OrderEventProducer {
	return &OrderEventProducer{writer: writer, retryAttempts: retryAttempts}
}

// Produce 同步發送, 會 block 到所有消息都寫入
func (p *OrderEventProducer) Produce(ctx context.Context, events ...event.Event) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		msg, err := convertToMessage(evt)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	var err error
	for attempt := 0; attempt <= p.retryAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("produce order events: %w", ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msgs...)
		if err == nil {
			return nil
		}
		if !isTemporary(err) {
			break
		}
	}
	return fmt.Errorf("produce order events: %w", err)
}

func (p *OrderEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func convertToMessage(evt event.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event %s: %w", evt.Type(), err)
	}

	return kafka.Message{
		Key:   []byte(evt.Key()),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(evt.Type()),
			},
		},
	}, nil
}

func isTemporary(err error) bool {
	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}
	return false
}

// NopOrderEventProducer 未設定 KAFKA_BROKERS 時使用
type NopOrderEventProducer struct{}

var _ IOrderEventProducer = NopOrderEventProducer{}

func (NopOrderEventProducer) Produce(context.Context, ...event.Event) error {
	return nil
}

func (NopOrderEventProducer) Close() error {
	return nil
}

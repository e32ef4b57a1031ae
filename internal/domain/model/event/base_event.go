package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderPlacedEventName        EventType = "OrderPlaced"
	OrderStatusChangedEventName EventType = "OrderStatusChanged"
)

type Event interface {
	Type() EventType
	GetID() string
	Key() string
}

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func NewBaseEvent(eventType EventType, orderID int64) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: strconv.FormatInt(orderID, 10),
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

func (e *BaseEvent) Type() EventType {
	return e.EventType
}

// Key 同一訂單的事件使用相同 key, 確保落在同一 partition
func (e *BaseEvent) Key() string {
	return e.AggregateID
}

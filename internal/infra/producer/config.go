package producer

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers       []string
	Topic         string
	BatchSize     int
	BatchTimeout  time.Duration
	RequiredAcks  kafka.RequiredAcks
	RetryAttempts int
}

func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:       brokers,
		Topic:         topic,
		BatchSize:     100,
		BatchTimeout:  10 * time.Millisecond,
		RequiredAcks:  kafka.RequireAll,
		RetryAttempts: 3,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka brokers is empty")
	}
	if c.Topic == "" {
		return errors.New("kafka topic is empty")
	}
	if c.RetryAttempts < 0 {
		return errors.New("kafka retry attempts must not be negative")
	}
	return nil
}

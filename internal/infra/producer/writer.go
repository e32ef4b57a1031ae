package producer

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Writer kafka.Writer 需要的子集合, 方便測試替換
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ Writer = (*kafka.Writer)(nil)

// NewKafkaWriter 同步寫入, 依 key hash 分區, 同一訂單的事件保持順序
func NewKafkaWriter(cfg *Config, logger *zerolog.Logger) (*kafka.Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           cfg.RequiredAcks,
		Async:                  false,
		AllowAutoTopicCreation: true,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),

		Compression: kafka.Snappy,
	}, nil
}

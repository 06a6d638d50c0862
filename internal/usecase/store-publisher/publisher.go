package storepublisher

import (
	"context"
	"encoding/json"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/config"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher appends ORDER_UPDATE and TRADE_ADDED records to the store topic
// for the downstream storage pipeline.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a Kafka publisher for the store topic.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.StoreTopic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PushRecord appends one record to the store topic.
func (p *Publisher) PushRecord(ctx context.Context, record gatewayv1.StoreRecord) error {
	buf, err := json.Marshal(record)
	if err != nil {
		return errors.NewTracer("store_record_marshal_error").Wrap(err)
	}

	msg := kafka.Message{
		Value: buf,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "type", Value: record.Type},
		)
		return errors.NewTracer("failed to push store record").Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

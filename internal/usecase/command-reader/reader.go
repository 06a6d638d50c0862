package commandreader

import (
	"context"
	"encoding/json"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/config"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes command envelopes from the command topic. The topic has a
// single partition, so reading it sequentially is what serializes command
// delivery into the engine.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

// NewReader creates a Kafka reader for the command topic. It returns an
// implementation of the gatewayv1.CommandReader interface.
func NewReader(cfg config.KafkaConfig, log *logger.Logger) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.CommandTopic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage reads one message and parses it as a command envelope. A
// malformed envelope is returned as a validation error together with the
// message, so the caller can skip past it without stalling the queue.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *gatewayv1.Envelope, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	var envelope gatewayv1.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		r.logError(err, "UnmarshalEnvelope")
		return msg, nil, errors.NewErrorDetails(
			"malformed command envelope",
			string(errors.ValidationError),
			"message",
		)
	}

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "clientId", Value: envelope.ClientID},
		logger.Field{Key: "type", Value: envelope.Message.Type},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	return msg, &envelope, nil
}

// CommitMessages acknowledges processed messages. The reader runs without a
// consumer group (the engine tracks its own offset), so there is nothing to
// commit broker-side.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

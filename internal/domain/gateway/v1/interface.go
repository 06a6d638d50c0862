package gatewayv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// CommandReader consumes command envelopes from the inbound queue. The queue
// is a single ordered partition; reading from it one message at a time is
// what serializes command processing.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=gatewayv1_mock
type CommandReader interface {
	// ReadMessage reads a message and returns the parsed command envelope.
	ReadMessage(ctx context.Context) (kafka.Message, *Envelope, error)
	// CommitMessages acknowledges the messages after processing.
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	// Close closes the reader.
	Close() error
}

// MarketPublisher carries point-to-point replies and market broadcasts.
// Delivery is fire-and-forget relative to command processing.
type MarketPublisher interface {
	SendToClient(ctx context.Context, clientID string, reply Reply) error
	PublishStream(ctx context.Context, channel string, event StreamEvent) error
}

// StorePublisher appends durable records for the storage pipeline.
type StorePublisher interface {
	PushRecord(ctx context.Context, record StoreRecord) error
	Close() error
}

package marketpublisher

import (
	"context"
	"encoding/json"

	gatewayv1 "github.com/muhammadchandra19/trade-engine/internal/domain/gateway/v1"
	"github.com/muhammadchandra19/trade-engine/pkg/errors"
	"github.com/muhammadchandra19/trade-engine/pkg/logger"
	"github.com/muhammadchandra19/trade-engine/pkg/redis"
)

// Publisher delivers point-to-point replies and market broadcasts over
// Redis pub/sub. Replies go to the channel named after the requester's
// client id; broadcasts go to the trade@<market> and depth@<market>
// channels.
type Publisher struct {
	redisclient redis.Client
	logger      *logger.Logger
}

// NewPublisher creates a market publisher on the given Redis client.
func NewPublisher(redisclient redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{
		redisclient: redisclient,
		logger:      log,
	}
}

// SendToClient publishes a reply on the client's channel.
func (p *Publisher) SendToClient(ctx context.Context, clientID string, reply gatewayv1.Reply) error {
	buf, err := json.Marshal(reply)
	if err != nil {
		return errors.NewTracer("reply_marshal_error").Wrap(err)
	}

	if _, err := p.redisclient.Publish(ctx, clientID, buf); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "clientId", Value: clientID},
			logger.Field{Key: "type", Value: reply.Type},
		)
		return err
	}
	return nil
}

// PublishStream publishes a broadcast event on a market channel.
func (p *Publisher) PublishStream(ctx context.Context, channel string, event gatewayv1.StreamEvent) error {
	buf, err := json.Marshal(event)
	if err != nil {
		return errors.NewTracer("stream_marshal_error").Wrap(err)
	}

	if _, err := p.redisclient.Publish(ctx, channel, buf); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "channel", Value: channel},
		)
		return err
	}
	return nil
}

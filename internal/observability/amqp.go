package observability

import (
	"context"

	"gameplan-service/internal/rabbitmq"
)

var defaultPublisher rabbitmq.Publisher

// SetPublisher installs the publisher used for ws_events. Nil disables them.
func SetPublisher(publisher rabbitmq.Publisher) {
	defaultPublisher = publisher
}

// PublishEvent sends an event envelope with the given headers. It is a no-op
// until SetPublisher is called.
func PublishEvent(ctx context.Context, routingKey string, message any, headers map[string]string) error {
	if defaultPublisher == nil {
		return nil
	}

	err := defaultPublisher.Publish(rabbitmq.WithHeaders(ctx, headers), routingKey, message)
	if err != nil {
		IncAMQPPublishError()
	}
	return err
}

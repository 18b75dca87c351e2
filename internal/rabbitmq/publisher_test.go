package rabbitmq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameplan-service/internal/telemetry"
)

func TestNewPublisherWithoutURLIsNoop(t *testing.T) {
	p := NewPublisher("", "gameplan.events")

	assert.Equal(t, "noop", PublisherMode(p))
	assert.Equal(t, "empty amqp url", PublisherNoopReason(p))
	require.NoError(t, p.Publish(context.Background(), "audit.gameplan", telemetry.AuditEnvelope{EventType: "audit_log"}))
	require.NoError(t, p.Close())
}

func TestHeadersTravelInContext(t *testing.T) {
	ctx := WithHeaders(context.Background(), map[string]string{"x-request-id": "abc"})

	table := headersFrom(ctx)

	assert.Equal(t, "abc", table["x-request-id"])
	assert.Empty(t, headersFrom(context.Background()))
}

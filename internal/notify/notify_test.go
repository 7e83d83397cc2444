package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Handle(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	n := NewNotifier(logger)
	ctx := context.Background()

	event := kafka.NewOrderEvent(kafka.EventOrderCreated, &domain.Order{ID: 7, UserID: 2, Tickets: []domain.Ticket{{FlightID: 1, Row: 1, Seat: 1}}})
	data, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, n.Handle(ctx, kafkago.Message{Value: data}))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "order confirmation sent", hook.LastEntry().Message)
	assert.Equal(t, int64(7), hook.LastEntry().Data["order_id"])
	assert.Equal(t, 1, hook.LastEntry().Data["tickets"])
}

func TestNotifier_HandleSkipsBadMessages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	n := NewNotifier(logger)
	ctx := context.Background()

	assert.NoError(t, n.Handle(ctx, kafkago.Message{Value: []byte("not json")}))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	other, err := json.Marshal(kafka.OrderEvent{Type: "order_cancelled"})
	require.NoError(t, err)
	assert.NoError(t, n.Handle(ctx, kafkago.Message{Value: other}))
	assert.Equal(t, "ignoring event", hook.LastEntry().Message)
}

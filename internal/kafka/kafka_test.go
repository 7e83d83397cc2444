package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderEvent(t *testing.T) {
	business := domain.TicketClassBusiness
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	order := &domain.Order{
		ID:        12,
		UserID:    3,
		CreatedAt: created,
		Tickets: []domain.Ticket{
			{FlightID: 1, Row: 2, Seat: 3, TicketClass: &business},
			{FlightID: 1, Row: 2, Seat: 4},
		},
	}

	event := NewOrderEvent(EventOrderCreated, order)

	_, err := uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, EventOrderCreated, event.Type)
	assert.Equal(t, int64(12), event.OrderID)
	assert.Equal(t, int64(3), event.UserID)
	assert.Equal(t, created, event.CreatedAt)
	assert.Equal(t, "12", event.Key())
	assert.Equal(t, []EventTicket{
		{FlightID: 1, Row: 2, Seat: 3, TicketClass: "business"},
		{FlightID: 1, Row: 2, Seat: 4},
	}, event.Tickets)
}

func TestDecodeOrderEvent(t *testing.T) {
	event := NewOrderEvent(EventOrderCreated, &domain.Order{ID: 5, UserID: 9})
	data, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := DecodeOrderEvent(kafka.Message{Value: data})
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, int64(5), decoded.OrderID)

	_, err = DecodeOrderEvent(kafka.Message{Value: []byte("{"), Offset: 42})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offset 42")
}

func TestNewProducerAndConsumer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, logrus.New())
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())

	c := NewConsumer([]string{"localhost:9092"}, "airport-notifier", "airport.orders", logrus.New())
	assert.Equal(t, "airport.orders", c.reader.Config().Topic)
	assert.Equal(t, "airport-notifier", c.reader.Config().GroupID)
	assert.NoError(t, c.Close())

	var nilConsumer *Consumer
	assert.NoError(t, nilConsumer.Close())
}

package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventOrderCreated = "order_created"

type OrderEvent struct {
	EventID    string        `json:"event_id"`
	Type       string        `json:"type"`
	OrderID    int64         `json:"order_id"`
	UserID     int64         `json:"user_id"`
	CreatedAt  time.Time     `json:"created_at"`
	Tickets    []EventTicket `json:"tickets"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type EventTicket struct {
	FlightID    int64  `json:"flight_id"`
	Row         int    `json:"row"`
	Seat        int    `json:"seat"`
	TicketClass string `json:"ticket_class,omitempty"`
}

func NewOrderEvent(eventType string, order *domain.Order) OrderEvent {
	tickets := make([]EventTicket, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = EventTicket{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
		if t.TicketClass != nil {
			tickets[i].TicketClass = string(*t.TicketClass)
		}
	}
	return OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		CreatedAt:  order.CreatedAt,
		Tickets:    tickets,
		OccurredAt: time.Now().UTC(),
	}
}

// Key partitions order events by order id.
func (e OrderEvent) Key() string {
	return strconv.FormatInt(e.OrderID, 10)
}

func DecodeOrderEvent(msg kafka.Message) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return event, fmt.Errorf("failed to decode order event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}

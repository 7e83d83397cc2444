package notify

import (
	"context"

	"github.com/Domenick1991/airport/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Notifier turns order events into user facing confirmations. Delivery is a
// structured log line; a mail or push transport plugs in behind Send.
type Notifier struct {
	log logrus.FieldLogger
}

func NewNotifier(log logrus.FieldLogger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Send(ctx context.Context, event kafka.OrderEvent) error {
	n.log.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"order_id": event.OrderID,
		"user_id":  event.UserID,
		"tickets":  len(event.Tickets),
	}).Info("order confirmation sent")
	return nil
}

// Handle is the consumer callback. Undecodable and unknown messages are
// logged and skipped so one bad record does not stall the group.
func (n *Notifier) Handle(ctx context.Context, msg kafkago.Message) error {
	event, err := kafka.DecodeOrderEvent(msg)
	if err != nil {
		n.log.WithError(err).Error("skipping message")
		return nil
	}
	if event.Type != kafka.EventOrderCreated {
		n.log.WithField("type", event.Type).Debug("ignoring event")
		return nil
	}
	return n.Send(ctx, event)
}

package booking

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateOrder(ctx context.Context, ownerID int64, tickets []TicketRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, ownerID int64, page query.Page) (*query.Result[domain.Order], error)
	GetOrder(ctx context.Context, identity access.Identity, orderID int64) (*domain.Order, error)
}

// SeatGuard is a short lived advisory lock per seat. The database unique
// constraint stays the authority; the guard only fails fast on races.
type SeatGuard interface {
	AcquireSeatLock(ctx context.Context, flightID int64, row, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, row, seat int) error
}

type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type TicketRequest struct {
	Row         int                     `json:"row"`
	Seat        int                     `json:"seat"`
	FlightID    int64                   `json:"flight"`
	TicketClass *domain.TicketClassName `json:"ticket_class"`
}

type BookingService struct {
	orders      repository.OrderRepository
	guard       SeatGuard
	guardTTL    time.Duration
	flights     FlightsInvalidator
	producer    Producer
	ordersTopic string
	log         logrus.FieldLogger
}

type BookingServiceOption func(*BookingService)

func WithSeatGuard(guard SeatGuard, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.guard = guard
		s.guardTTL = ttl
	}
}

func WithFlightsInvalidator(flights FlightsInvalidator) BookingServiceOption {
	return func(s *BookingService) {
		s.flights = flights
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.ordersTopic = topic
	}
}

func NewBookingService(orders repository.OrderRepository, log logrus.FieldLogger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{orders: orders, log: log}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder books every requested seat for ownerID or none of them.
func (s *BookingService) CreateOrder(ctx context.Context, ownerID int64, requests []TicketRequest) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	tickets := make([]domain.Ticket, len(requests))
	seen := make(map[seatKey]struct{}, len(requests))
	flightIDs := make([]int64, 0, len(requests))
	for i, r := range requests {
		if r.FlightID <= 0 {
			return nil, domain.NewValidationError("flight", "this field is required")
		}
		if r.TicketClass != nil && !r.TicketClass.Valid() {
			return nil, domain.NewValidationError("ticket_class", fmt.Sprintf("%q is not a valid choice", *r.TicketClass))
		}
		key := seatKey{r.FlightID, r.Row, r.Seat}
		if _, dup := seen[key]; dup {
			return nil, &domain.SeatAlreadyBookedError{FlightID: r.FlightID, Row: r.Row, Seat: r.Seat}
		}
		seen[key] = struct{}{}
		if !slices.Contains(flightIDs, r.FlightID) {
			flightIDs = append(flightIDs, r.FlightID)
		}
		tickets[i] = domain.Ticket{Row: r.Row, Seat: r.Seat, FlightID: r.FlightID, TicketClass: r.TicketClass}
	}

	layouts, err := s.orders.SeatLayouts(ctx, flightIDs)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if err := domain.ValidateSeat(t.Row, t.Seat, layouts[t.FlightID]); err != nil {
			return nil, err
		}
	}

	held := s.holdSeats(ctx, tickets)
	defer s.releaseSeats(ctx, held)

	order, err := s.orders.CreateOrder(ctx, &domain.Order{UserID: ownerID, Tickets: tickets})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "user_id": ownerID, "tickets": len(order.Tickets)}).Info("order created")
	if s.flights != nil {
		if err := s.flights.InvalidateFlights(ctx); err != nil {
			s.log.WithError(err).Warn("flight cache invalidation failed")
		}
	}
	if err := s.publish(ctx, kafka.EventOrderCreated, order); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
	return order, nil
}

type seatKey struct {
	flightID  int64
	row, seat int
}

// holdSeats takes the advisory guard for every ticket it can and returns
// the ones it holds. A guard held elsewhere only means another request is in
// flight for that seat; the unique ticket constraint decides who gets it.
func (s *BookingService) holdSeats(ctx context.Context, tickets []domain.Ticket) []domain.Ticket {
	if s.guard == nil {
		return nil
	}
	held := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		ok, err := s.guard.AcquireSeatLock(ctx, t.FlightID, t.Row, t.Seat, s.guardTTL)
		if err != nil {
			s.log.WithError(err).Warn("seat guard unavailable, relying on database constraint")
			return held
		}
		if !ok {
			s.log.WithFields(logrus.Fields{"flight_id": t.FlightID, "row": t.Row, "seat": t.Seat}).
				Info("seat guard held elsewhere, deferring to database constraint")
			continue
		}
		held = append(held, t)
	}
	return held
}

func (s *BookingService) releaseSeats(ctx context.Context, held []domain.Ticket) {
	for _, t := range held {
		if err := s.guard.ReleaseSeatLock(ctx, t.FlightID, t.Row, t.Seat); err != nil {
			s.log.WithError(err).Warn("failed to release seat guard")
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}
	event := kafka.NewOrderEvent(eventType, order)
	return s.producer.Publish(ctx, s.ordersTopic, event.Key(), event)
}

// ListOrders only ever returns orders owned by ownerID, newest first.
func (s *BookingService) ListOrders(ctx context.Context, ownerID int64, page query.Page) (*query.Result[domain.Order], error) {
	orders, total, err := s.orders.ListByUser(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	result := query.NewResult(orders, total, page)
	return &result, nil
}

// GetOrder hides orders the identity does not own behind ErrNotFound so
// their existence is not revealed. Admins see every order.
func (s *BookingService) GetOrder(ctx context.Context, identity access.Identity, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !identity.Owns(order.UserID) {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	return order, nil
}

var _ BookingUseCase = (*BookingService)(nil)

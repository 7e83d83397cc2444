package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// SeatLayouts resolves the airplane layout of every given flight.
	SeatLayouts(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatLayout, error)
	// CreateOrder persists the order and all of its tickets or nothing.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page query.Page) ([]domain.Order, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// queryer is the read surface shared by the pool and a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const layoutSQL = `SELECT f.id, a.rows, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id = ANY($1)`

func (r *PGOrderRepository) SeatLayouts(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatLayout, error) {
	return layouts(ctx, r.db, layoutSQL, flightIDs)
}

func layouts(ctx context.Context, q queryer, sql string, flightIDs []int64) (map[int64]domain.SeatLayout, error) {
	rows, err := q.Query(ctx, sql, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seat layouts: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]domain.SeatLayout, len(flightIDs))
	for rows.Next() {
		var id int64
		var l domain.SeatLayout
		if err := rows.Scan(&id, &l.Rows, &l.SeatsInRow); err != nil {
			return nil, err
		}
		out[id] = l
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range flightIDs {
		if _, ok := out[id]; !ok {
			return nil, notFound("flight", id)
		}
	}
	return out, nil
}

func (r *PGOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Flights and airplanes stay readable but cannot change under the booking.
	locked, err := layouts(ctx, tx, layoutSQL+" FOR SHARE", flightIDs(order.Tickets))
	if err != nil {
		return nil, err
	}
	for _, t := range order.Tickets {
		if err := domain.ValidateSeat(t.Row, t.Seat, locked[t.FlightID]); err != nil {
			return nil, err
		}
	}

	classes, err := ticketClassIDs(ctx, tx, order.Tickets)
	if err != nil {
		return nil, err
	}

	created := &domain.Order{UserID: order.UserID, Tickets: make([]domain.Ticket, 0, len(order.Tickets))}
	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, translate(err)
	}

	for _, t := range order.Tickets {
		var classID *int64
		if t.TicketClass != nil {
			id := classes[*t.TicketClass]
			classID = &id
		}
		t.OrderID = created.ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets (row_num, seat_num, flight_id, order_id, ticket_class_id)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			t.Row, t.Seat, t.FlightID, created.ID, classID).Scan(&t.ID); err != nil {
			return nil, ticketInsertError(err, t)
		}
		created.Tickets = append(created.Tickets, t)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	domain.SortTickets(created.Tickets)
	return created, nil
}

func ticketInsertError(err error, t domain.Ticket) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == ticketSeatConstraint {
		return &domain.SeatAlreadyBookedError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	}
	return translate(err)
}

func ticketClassIDs(ctx context.Context, tx pgx.Tx, tickets []domain.Ticket) (map[domain.TicketClassName]int64, error) {
	var names []string
	for _, t := range tickets {
		if t.TicketClass != nil && !slices.Contains(names, string(*t.TicketClass)) {
			names = append(names, string(*t.TicketClass))
		}
	}
	ids := make(map[domain.TicketClassName]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	rows, err := tx.Query(ctx, `SELECT id, name FROM ticket_classes WHERE name = ANY($1) FOR SHARE`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ticket classes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[domain.TicketClassName(name)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, n := range names {
		if _, ok := ids[domain.TicketClassName(n)]; !ok {
			return nil, domain.NewValidationError("ticket_class", fmt.Sprintf("ticket class %q does not exist", n))
		}
	}
	return ids, nil
}

func flightIDs(tickets []domain.Ticket) []int64 {
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if !slices.Contains(ids, t.FlightID) {
			ids = append(ids, t.FlightID)
		}
	}
	slices.Sort(ids)
	return ids
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page query.Page) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`, userID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, page.Size)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	tickets, err := r.tickets(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Tickets = nonNil(tickets[orders[i].ID])
	}
	return orders, total, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id = $1`, id).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	tickets, err := r.tickets(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Tickets = nonNil(tickets[id])
	return &o, nil
}

// tickets loads the tickets of the given orders with their flight summary.
func (r *PGOrderRepository) tickets(ctx context.Context, orderIDs []int64) (map[int64][]domain.Ticket, error) {
	out := make(map[int64][]domain.Ticket, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.row_num, t.seat_num, t.flight_id, t.order_id, tc.name,
		       src.name, dst.name, a.name, f.departure_time, f.arrival_time
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN ticket_classes tc ON tc.id = t.ticket_class_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.row_num, t.seat_num, t.flight_id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t         domain.Ticket
			className *string
			route     domain.Route
			airplane  string
			dep, arr  time.Time
		)
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID, &className,
			&route.Source.Name, &route.Destination.Name, &airplane, &dep, &arr); err != nil {
			return nil, err
		}
		if className != nil {
			name := domain.TicketClassName(*className)
			t.TicketClass = &name
		}
		t.Flight = &domain.TicketFlight{Route: route.Label(), AirplaneName: airplane, DepartureTime: dep, ArrivalTime: arr}
		out[t.OrderID] = append(out[t.OrderID], t)
	}
	return out, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)

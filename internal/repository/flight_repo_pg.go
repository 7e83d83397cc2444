package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, where query.Where, page query.Page) ([]domain.FlightSummary, int, error)
	CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightListFrom = `FROM flights f
	JOIN routes r ON r.id = f.route_id ` + routeJoins + `
	JOIN airplanes a ON a.id = f.airplane_id`

func (r *PGFlightRepository) List(ctx context.Context, where query.Where, page query.Page) ([]domain.FlightSummary, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM flights f"+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count flights: %w", err)
	}

	sql := "SELECT f.id, f.departure_time, f.arrival_time, " + routeColumns + ", a.id, a.name, a.rows, a.seats_in_row " +
		flightListFrom + where.SQL() +
		" ORDER BY f.arrival_time DESC, f.id DESC LIMIT " + where.Placeholder(0) + " OFFSET " + where.Placeholder(1)
	rows, err := r.db.Query(ctx, sql, append(where.Args(), page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightSummary, 0, page.Size)
	for rows.Next() {
		var f domain.FlightSummary
		dest := []any{&f.ID, &f.DepartureTime, &f.ArrivalTime}
		dest = append(dest, routeDest(&f.Route)...)
		dest = append(dest, &f.AirplaneID, &f.AirplaneName, &f.Layout.Rows, &f.Layout.SeatsInRow)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan flight: %w", err)
		}
		f.Duration = domain.DurationMinutes(f.DepartureTime, f.ArrivalTime)
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	crews, err := r.crews(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range flights {
		flights[i].Crew = nonNil(crews[flights[i].ID])
	}
	return flights, total, nil
}

// CountTickets returns booked ticket counts keyed by flight id; flights
// without tickets are absent from the map.
func (r *PGFlightRepository) CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(flightIDs))
	if len(flightIDs) == 0 {
		return counts, nil
	}
	rows, err := r.db.Query(ctx, `SELECT flight_id, count(*) FROM tickets WHERE flight_id = ANY($1) GROUP BY flight_id`, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *PGFlightRepository) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	var f domain.Flight
	err := r.db.QueryRow(ctx, `
		SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
		       ARRAY(SELECT fc.crew_id FROM flight_crew fc WHERE fc.flight_id = f.id ORDER BY fc.crew_id)
		FROM flights f WHERE f.id = $1`, id).
		Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.CrewIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("flight", id)
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if f.CrewIDs == nil {
		f.CrewIDs = []int64{}
	}
	return &f, nil
}

func (r *PGFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	var d domain.FlightDetail
	var s airplaneScan
	dest := []any{&d.ID, &d.DepartureTime, &d.ArrivalTime}
	dest = append(dest, routeDest(&d.Route)...)
	dest = append(dest, s.dest(&d.Airplane)...)

	err := r.db.QueryRow(ctx, "SELECT f.id, f.departure_time, f.arrival_time, "+routeColumns+", "+airplaneColumns+" "+
		"FROM flights f JOIN routes r ON r.id = f.route_id "+routeJoins+
		" JOIN airplanes a ON a.id = f.airplane_id "+airplaneJoins+
		" WHERE f.id = $1", id).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("flight", id)
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	s.finish(&d.Airplane)
	d.Duration = domain.DurationMinutes(d.DepartureTime, d.ArrivalTime)

	crews, err := r.crews(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	d.Crew = nonNil(crews[id])

	rows, err := r.db.Query(ctx, `SELECT row_num, seat_num FROM tickets WHERE flight_id = $1 ORDER BY row_num, seat_num`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query taken places: %w", err)
	}
	defer rows.Close()

	d.TakenPlaces = []domain.SeatPlace{}
	for rows.Next() {
		var p domain.SeatPlace
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, err
		}
		d.TakenPlaces = append(d.TakenPlaces, p)
	}
	return &d, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&id); err != nil {
		return nil, translate(err)
	}
	if err := setCrew(ctx, tx, id, flight.CrewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE flights SET route_id = $1, airplane_id = $2, departure_time = $3, arrival_time = $4 WHERE id = $5`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, id)
	if err != nil {
		return nil, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, notFound("flight", id)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crew WHERE flight_id = $1`, id); err != nil {
		return nil, err
	}
	if err := setCrew(ctx, tx, id, flight.CrewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("flight", id)
	}
	return nil
}

func setCrew(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id)
		SELECT $1, c FROM unnest($2::bigint[]) AS c ON CONFLICT DO NOTHING`, flightID, crewIDs)
	return translate(err)
}

// crews loads the crew of every given flight in one query.
func (r *PGFlightRepository) crews(ctx context.Context, flightIDs []int64) (map[int64][]domain.Crew, error) {
	out := make(map[int64][]domain.Crew, len(flightIDs))
	if len(flightIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name, c.position
		FROM flight_crew fc JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id`, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flightID int64
		var c domain.Crew
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName, &c.Position); err != nil {
			return nil, err
		}
		out[flightID] = append(out[flightID], c)
	}
	return out, rows.Err()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ FlightRepository = (*PGFlightRepository)(nil)

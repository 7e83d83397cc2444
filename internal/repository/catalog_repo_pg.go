package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	routeColumns = "r.id, r.distance, src.id, src.name, src.closest_big_city, dst.id, dst.name, dst.closest_big_city"
	routeJoins   = "JOIN airports src ON src.id = r.source_id JOIN airports dst ON dst.id = r.destination_id"

	airplaneColumns = "a.id, a.name, a.rows, a.seats_in_row, t.id, t.name, al.id, al.name, al.logo"
	airplaneJoins   = "JOIN airplane_types t ON t.id = a.airplane_type_id LEFT JOIN airlines al ON al.id = a.airline_id"
)

func routeDest(r *domain.Route) []any {
	return []any{
		&r.ID, &r.Distance,
		&r.Source.ID, &r.Source.Name, &r.Source.ClosestBigCity,
		&r.Destination.ID, &r.Destination.Name, &r.Destination.ClosestBigCity,
	}
}

// airplaneScan collects the nullable airline columns of an airplane row.
type airplaneScan struct {
	airlineID   *int64
	airlineName *string
	airlineLogo *string
}

func (s *airplaneScan) dest(a *domain.Airplane) []any {
	return []any{
		&a.ID, &a.Name, &a.Rows, &a.SeatsInRow,
		&a.AirplaneType.ID, &a.AirplaneType.Name,
		&s.airlineID, &s.airlineName, &s.airlineLogo,
	}
}

func (s *airplaneScan) finish(a *domain.Airplane) {
	if s.airlineID == nil {
		a.Airline = nil
		return
	}
	a.Airline = &domain.Airline{ID: *s.airlineID, Logo: s.airlineLogo}
	if s.airlineName != nil {
		a.Airline.Name = *s.airlineName
	}
}

func NewAirportStore(db *pgxpool.Pool) Store[domain.Airport] {
	return newStore(db, entity[domain.Airport]{
		name:    "airport",
		table:   "airports",
		columns: "ap.id, ap.name, ap.closest_big_city",
		from:    "FROM airports ap",
		idCol:   "ap.id",
		orderBy: "ap.id",
		writes:  []string{"name", "closest_big_city"},
		values: func(a *domain.Airport) []any {
			return []any{a.Name, a.ClosestBigCity}
		},
		scan: func(row pgx.Row) (domain.Airport, error) {
			var a domain.Airport
			err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCity)
			return a, err
		},
	})
}

func NewRouteStore(db *pgxpool.Pool) Store[domain.Route] {
	return newStore(db, entity[domain.Route]{
		name:    "route",
		table:   "routes",
		columns: routeColumns,
		from:    "FROM routes r " + routeJoins,
		idCol:   "r.id",
		orderBy: "r.id",
		writes:  []string{"source_id", "destination_id", "distance"},
		values: func(r *domain.Route) []any {
			return []any{r.Source.ID, r.Destination.ID, r.Distance}
		},
		scan: func(row pgx.Row) (domain.Route, error) {
			var r domain.Route
			err := row.Scan(routeDest(&r)...)
			return r, err
		},
	})
}

func NewAirplaneTypeStore(db *pgxpool.Pool) Store[domain.AirplaneType] {
	return newStore(db, entity[domain.AirplaneType]{
		name:    "airplane type",
		table:   "airplane_types",
		columns: "t.id, t.name",
		from:    "FROM airplane_types t",
		idCol:   "t.id",
		orderBy: "t.id",
		writes:  []string{"name"},
		values: func(t *domain.AirplaneType) []any {
			return []any{t.Name}
		},
		scan: func(row pgx.Row) (domain.AirplaneType, error) {
			var t domain.AirplaneType
			err := row.Scan(&t.ID, &t.Name)
			return t, err
		},
	})
}

func NewCrewStore(db *pgxpool.Pool) Store[domain.Crew] {
	return newStore(db, entity[domain.Crew]{
		name:    "crew",
		table:   "crews",
		columns: "c.id, c.first_name, c.last_name, c.position",
		from:    "FROM crews c",
		idCol:   "c.id",
		orderBy: "c.id",
		writes:  []string{"first_name", "last_name", "position"},
		values: func(c *domain.Crew) []any {
			return []any{c.FirstName, c.LastName, c.Position}
		},
		scan: func(row pgx.Row) (domain.Crew, error) {
			var c domain.Crew
			err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Position)
			return c, err
		},
	})
}

func NewTicketClassStore(db *pgxpool.Pool) Store[domain.TicketClass] {
	return newStore(db, entity[domain.TicketClass]{
		name:    "ticket class",
		table:   "ticket_classes",
		columns: "tc.id, tc.name, tc.price_multiplier, tc.baggage_allowance, tc.cancellation_policy, tc.meal_service, tc.priority_boarding",
		from:    "FROM ticket_classes tc",
		idCol:   "tc.id",
		orderBy: "tc.id",
		writes:  []string{"name", "price_multiplier", "baggage_allowance", "cancellation_policy", "meal_service", "priority_boarding"},
		values: func(tc *domain.TicketClass) []any {
			return []any{string(tc.Name), tc.PriceMultiplier, tc.BaggageAllowance, tc.CancellationPolicy, tc.MealService, tc.PriorityBoarding}
		},
		scan: func(row pgx.Row) (domain.TicketClass, error) {
			var tc domain.TicketClass
			var name string
			err := row.Scan(&tc.ID, &name, &tc.PriceMultiplier, &tc.BaggageAllowance, &tc.CancellationPolicy, &tc.MealService, &tc.PriorityBoarding)
			tc.Name = domain.TicketClassName(name)
			return tc, err
		},
	})
}

func NewAirplaneStore(db *pgxpool.Pool) Store[domain.Airplane] {
	return newStore(db, entity[domain.Airplane]{
		name:    "airplane",
		table:   "airplanes",
		columns: airplaneColumns,
		from:    "FROM airplanes a " + airplaneJoins,
		idCol:   "a.id",
		orderBy: "a.id",
		writes:  []string{"name", "rows", "seats_in_row", "airplane_type_id", "airline_id"},
		values: func(a *domain.Airplane) []any {
			var airlineID *int64
			if a.Airline != nil {
				airlineID = &a.Airline.ID
			}
			return []any{a.Name, a.Rows, a.SeatsInRow, a.AirplaneType.ID, airlineID}
		},
		scan: func(row pgx.Row) (domain.Airplane, error) {
			var a domain.Airplane
			var s airplaneScan
			if err := row.Scan(s.dest(&a)...); err != nil {
				return a, err
			}
			s.finish(&a)
			return a, nil
		},
	})
}

// AirlineStore adds logo bookkeeping to the generic store.
type AirlineStore interface {
	Store[domain.Airline]
	// SetLogo stores the new logo reference and returns the previous one.
	SetLogo(ctx context.Context, id int64, logo string) (*string, error)
}

type PGAirlineStore struct {
	*PGStore[domain.Airline]
}

func NewAirlineStore(db *pgxpool.Pool) AirlineStore {
	return &PGAirlineStore{PGStore: newStore(db, entity[domain.Airline]{
		name:    "airline",
		table:   "airlines",
		columns: "al.id, al.name, al.logo",
		from:    "FROM airlines al",
		idCol:   "al.id",
		orderBy: "al.id",
		writes:  []string{"name"},
		values: func(a *domain.Airline) []any {
			return []any{a.Name}
		},
		scan: func(row pgx.Row) (domain.Airline, error) {
			var a domain.Airline
			err := row.Scan(&a.ID, &a.Name, &a.Logo)
			return a, err
		},
	})}
}

func (s *PGAirlineStore) SetLogo(ctx context.Context, id int64, logo string) (*string, error) {
	var previous *string
	err := s.db.QueryRow(ctx, `
		UPDATE airlines cur SET logo = $2
		FROM airlines prev
		WHERE cur.id = $1 AND prev.id = cur.id
		RETURNING prev.logo`, id, logo).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("airline", id)
		}
		return nil, fmt.Errorf("failed to set airline logo: %w", err)
	}
	return previous, nil
}

var (
	_ Store[domain.Route]    = (*PGStore[domain.Route])(nil)
	_ Store[domain.Airplane] = (*PGStore[domain.Airplane])(nil)
	_ AirlineStore           = (*PGAirlineStore)(nil)
)

package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	ticketSeatConstraint = "tickets_flight_row_seat_key"
)

var checkFields = map[string][2]string{
	"routes_distinct_endpoints":       {"destination", "source and destination must be different airports"},
	"routes_distance_positive":        {"distance", "must be a positive integer"},
	"airplanes_rows_positive":         {"rows", "must be at least 1"},
	"airplanes_seats_in_row_positive": {"seats_in_row", "must be at least 1"},
	"flights_arrival_after_departure": {"arrival_time", "must be later than departure_time"},
	"ticket_classes_name_known":       {"name", "is not a valid choice"},
}

// translate maps storage errors onto the domain error taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return domain.NewValidationError(foreignKeyField(pgErr.TableName, pgErr.ConstraintName), "referenced object does not exist")
	case codeCheckViolation:
		if f, ok := checkFields[pgErr.ConstraintName]; ok {
			return domain.NewValidationError(f[0], f[1])
		}
		return domain.NewValidationError("non_field_errors", pgErr.Message)
	}
	return err
}

// foreignKeyField turns postgres' default "<table>_<column>_id_fkey" into
// the API field name.
func foreignKeyField(table, constraint string) string {
	name := strings.TrimPrefix(constraint, table+"_")
	name = strings.TrimSuffix(name, "_fkey")
	name = strings.TrimSuffix(name, "_id")
	if name == "" {
		return "non_field_errors"
	}
	return name
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

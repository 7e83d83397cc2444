package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("authentication credentials were not provided")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
	ErrConflict     = errors.New("conflict")
	ErrEmptyOrder   = errors.New("at least one ticket is required")
)

// ValidationError carries field-keyed messages.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil lets callers collect errors and return a nil error interface when
// nothing was added.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type SeatOutOfRangeError struct {
	Field string
	Limit string
	Bound int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)", e.Field, e.Limit, e.Bound)
}

type SeatAlreadyBookedError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *SeatAlreadyBookedError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d is already booked", e.Row, e.Seat, e.FlightID)
}

func (e *SeatAlreadyBookedError) Is(target error) bool {
	return target == ErrConflict
}

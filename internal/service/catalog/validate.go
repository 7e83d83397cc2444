package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Domenick1991/airport/internal/domain"
)

const (
	msgRequired = "this field is required"
	msgPositive = "must be a positive integer"
)

func requireText(v *domain.ValidationError, field, value string, maxLen int) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, msgRequired)
	case utf8.RuneCountInString(value) > maxLen:
		v.Add(field, fmt.Sprintf("ensure this field has no more than %d characters", maxLen))
	}
}

func requireRef(v *domain.ValidationError, field string, id int64) {
	if id <= 0 {
		v.Add(field, msgRequired)
	}
}

func ValidateAirport(a *domain.Airport) error {
	v := &domain.ValidationError{}
	requireText(v, "name", a.Name, 100)
	requireText(v, "closest_big_city", a.ClosestBigCity, 100)
	return v.OrNil()
}

func ValidateRoute(r *domain.Route) error {
	v := &domain.ValidationError{}
	requireRef(v, "source", r.Source.ID)
	requireRef(v, "destination", r.Destination.ID)
	if r.Source.ID > 0 && r.Source.ID == r.Destination.ID {
		v.Add("destination", "source and destination must be different airports")
	}
	if r.Distance <= 0 {
		v.Add("distance", msgPositive)
	}
	return v.OrNil()
}

func ValidateAirplaneType(t *domain.AirplaneType) error {
	v := &domain.ValidationError{}
	requireText(v, "name", t.Name, 100)
	return v.OrNil()
}

func ValidateAirline(a *domain.Airline) error {
	v := &domain.ValidationError{}
	requireText(v, "name", a.Name, 100)
	return v.OrNil()
}

func ValidateAirplane(a *domain.Airplane) error {
	v := &domain.ValidationError{}
	requireText(v, "name", a.Name, 100)
	if a.Rows < 1 {
		v.Add("rows", "must be at least 1")
	}
	if a.SeatsInRow < 1 {
		v.Add("seats_in_row", "must be at least 1")
	}
	requireRef(v, "airplane_type", a.AirplaneType.ID)
	if a.Airline != nil && a.Airline.ID <= 0 {
		v.Add("airline", "invalid pk")
	}
	return v.OrNil()
}

func ValidateCrew(c *domain.Crew) error {
	v := &domain.ValidationError{}
	requireText(v, "first_name", c.FirstName, 50)
	requireText(v, "last_name", c.LastName, 50)
	requireText(v, "position", c.Position, 255)
	return v.OrNil()
}

// ValidateTicketClass checks the class against the closed set of names and
// fills the documented defaults for omitted numeric fields.
func ValidateTicketClass(tc *domain.TicketClass) error {
	v := &domain.ValidationError{}
	if !tc.Name.Valid() {
		v.Add("name", fmt.Sprintf("%q is not a valid choice", tc.Name))
	}
	if tc.PriceMultiplier == 0 {
		tc.PriceMultiplier = domain.DefaultPriceMultiplier
	}
	if tc.PriceMultiplier < 0 {
		v.Add("price_multiplier", "must be greater than zero")
	}
	if tc.BaggageAllowance < 0 {
		v.Add("baggage_allowance", "must not be negative")
	}
	return v.OrNil()
}

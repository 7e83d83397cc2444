package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
)

const DateLayout = "2006-01-02"

type BadDateFormatError struct {
	Field string
	Value string
}

func (e *BadDateFormatError) Error() string {
	return fmt.Sprintf("date has wrong format %q, use YYYY-MM-DD", e.Value)
}

type FlightFilter struct {
	DepartureDate *time.Time
	AirplaneID    *int64
	RouteID       *int64
}

func ParseFlightFilter(values url.Values) (FlightFilter, error) {
	var f FlightFilter

	if raw := strings.TrimSpace(values.Get("departure_date")); raw != "" {
		d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
		if err != nil {
			return FlightFilter{}, &BadDateFormatError{Field: "departure_date", Value: raw}
		}
		f.DepartureDate = &d
	}

	var verr domain.ValidationError
	f.AirplaneID = parseID(values, "airplane", &verr)
	f.RouteID = parseID(values, "route", &verr)
	if err := verr.OrNil(); err != nil {
		return FlightFilter{}, err
	}
	return f, nil
}

// Where matches the departure calendar day in UTC as a half-open range.
func (f FlightFilter) Where() Where {
	var w Where
	if f.DepartureDate != nil {
		start := *f.DepartureDate
		w.Add("f.departure_time >= ? AND f.departure_time < ?", start, start.AddDate(0, 0, 1))
	}
	if f.AirplaneID != nil {
		w.Add("f.airplane_id = ?", *f.AirplaneID)
	}
	if f.RouteID != nil {
		w.Add("f.route_id = ?", *f.RouteID)
	}
	return w
}

// Key renders the filter and page canonically, for use as a cache key.
func (f FlightFilter) Key(p Page) string {
	v := url.Values{}
	if f.DepartureDate != nil {
		v.Set("departure_date", f.DepartureDate.Format(DateLayout))
	}
	if f.AirplaneID != nil {
		v.Set("airplane", strconv.FormatInt(*f.AirplaneID, 10))
	}
	if f.RouteID != nil {
		v.Set("route", strconv.FormatInt(*f.RouteID, 10))
	}
	v.Set("page", strconv.Itoa(p.Number))
	v.Set("page_size", strconv.Itoa(p.Size))
	return v.Encode()
}

type AirplaneFilter struct {
	Name         string
	AirplaneType string
}

func ParseAirplaneFilter(values url.Values) AirplaneFilter {
	return AirplaneFilter{
		Name:         strings.TrimSpace(values.Get("name")),
		AirplaneType: strings.TrimSpace(values.Get("airplane_type")),
	}
}

func (f AirplaneFilter) Where() Where {
	var w Where
	if f.Name != "" {
		w.Add(`a.name ILIKE ? ESCAPE '\'`, Contains(f.Name))
	}
	if f.AirplaneType != "" {
		w.Add(`t.name ILIKE ? ESCAPE '\'`, Contains(f.AirplaneType))
	}
	return w
}

func parseID(values url.Values, key string, verr *domain.ValidationError) *int64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		verr.Add(key, "must be a positive integer id")
		return nil
	}
	return &id
}

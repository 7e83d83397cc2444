package domain

import (
	"cmp"
	"slices"
	"time"
)

// Flight is the writable shape of a flight: references by id.
type Flight struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

func (f Flight) DurationMinutes() float64 {
	return DurationMinutes(f.DepartureTime, f.ArrivalTime)
}

func DurationMinutes(departure, arrival time.Time) float64 {
	return arrival.Sub(departure).Minutes()
}

// FlightSummary is a flight listing row. TicketsAvailable is filled by the
// availability pass after the page has been loaded.
type FlightSummary struct {
	ID               int64      `json:"id"`
	Route            Route      `json:"route"`
	AirplaneID       int64      `json:"airplane"`
	AirplaneName     string     `json:"airplane_name"`
	DepartureTime    time.Time  `json:"departure_time"`
	ArrivalTime      time.Time  `json:"arrival_time"`
	Duration         float64    `json:"duration"`
	Crew             []Crew     `json:"crew"`
	Layout           SeatLayout `json:"-"`
	TicketsAvailable int        `json:"tickets_available"`
}

type FlightDetail struct {
	ID            int64       `json:"id"`
	Route         Route       `json:"route"`
	Airplane      Airplane    `json:"airplane"`
	Crew          []Crew      `json:"crew"`
	DepartureTime time.Time   `json:"departure_time"`
	ArrivalTime   time.Time   `json:"arrival_time"`
	Duration      float64     `json:"duration"`
	TakenPlaces   []SeatPlace `json:"taken_places"`
}

type SeatPlace struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func CompareSeats(a, b SeatPlace) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Seat, b.Seat)
}

func SortSeats(places []SeatPlace) {
	slices.SortFunc(places, CompareSeats)
}

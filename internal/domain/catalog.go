package domain

import "encoding/json"

type Airport struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type Route struct {
	ID          int64   `json:"id"`
	Source      Airport `json:"source"`
	Destination Airport `json:"destination"`
	Distance    int     `json:"distance"`
}

// Label renders the route the way it is shown on tickets.
func (r Route) Label() string {
	return r.Source.Name + " - " + r.Destination.Name
}

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Airline struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}

type Airplane struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Rows         int          `json:"rows"`
	SeatsInRow   int          `json:"seats_in_row"`
	AirplaneType AirplaneType `json:"airplane_type"`
	Airline      *Airline     `json:"airline"`
}

func (a Airplane) Layout() SeatLayout {
	return SeatLayout{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

func (a Airplane) TotalSeats() int {
	return a.Layout().Capacity()
}

func (a Airplane) MarshalJSON() ([]byte, error) {
	type plain Airplane
	return json.Marshal(struct {
		plain
		TotalSeats int `json:"total_seats"`
	}{plain(a), a.TotalSeats()})
}

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c Crew) MarshalJSON() ([]byte, error) {
	type plain Crew
	return json.Marshal(struct {
		plain
		FullName string `json:"full_name"`
	}{plain(c), c.FullName()})
}

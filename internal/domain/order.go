package domain

import (
	"slices"
	"time"
)

type TicketClassName string

const (
	TicketClassEconomy        TicketClassName = "economy"
	TicketClassBusiness       TicketClassName = "business"
	TicketClassFirstClass     TicketClassName = "first_class"
	TicketClassPremiumEconomy TicketClassName = "premium_economy"
)

var ticketClassNames = []TicketClassName{
	TicketClassEconomy,
	TicketClassBusiness,
	TicketClassFirstClass,
	TicketClassPremiumEconomy,
}

func (n TicketClassName) Valid() bool {
	return slices.Contains(ticketClassNames, n)
}

func TicketClassNames() []TicketClassName {
	return slices.Clone(ticketClassNames)
}

const (
	DefaultPriceMultiplier  = 1.0
	DefaultBaggageAllowance = 20
)

type TicketClass struct {
	ID                 int64           `json:"id"`
	Name               TicketClassName `json:"name"`
	PriceMultiplier    float64         `json:"price_multiplier"`
	BaggageAllowance   int             `json:"baggage_allowance"`
	CancellationPolicy string          `json:"cancellation_policy"`
	MealService        bool            `json:"meal_service"`
	PriorityBoarding   bool            `json:"priority_boarding"`
}

type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

type Ticket struct {
	ID          int64            `json:"id"`
	Row         int              `json:"row"`
	Seat        int              `json:"seat"`
	FlightID    int64            `json:"flight"`
	OrderID     int64            `json:"-"`
	TicketClass *TicketClassName `json:"ticket_class"`
	Flight      *TicketFlight    `json:"flight_info,omitempty"`
}

func (t Ticket) Place() SeatPlace {
	return SeatPlace{Row: t.Row, Seat: t.Seat}
}

// TicketFlight is the flight summary embedded in order listings.
type TicketFlight struct {
	Route         string    `json:"route"`
	AirplaneName  string    `json:"airplane_name"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// SortTickets orders tickets by (row, seat); flight id breaks ties so the
// result is deterministic for multi-flight orders.
func SortTickets(tickets []Ticket) {
	slices.SortFunc(tickets, func(a, b Ticket) int {
		if c := CompareSeats(a.Place(), b.Place()); c != 0 {
			return c
		}
		switch {
		case a.FlightID < b.FlightID:
			return -1
		case a.FlightID > b.FlightID:
			return 1
		}
		return 0
	})
}

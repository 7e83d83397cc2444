package api

import (
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
)

type airportRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	ClosestBigCity string `json:"closest_big_city" binding:"required,max=100"`
}

func (r *airportRequest) model() *domain.Airport {
	return &domain.Airport{Name: r.Name, ClosestBigCity: r.ClosestBigCity}
}

type routeRequest struct {
	Source      int64 `json:"source" binding:"required,gt=0"`
	Destination int64 `json:"destination" binding:"required,gt=0,nefield=Source"`
	Distance    int   `json:"distance" binding:"required,gt=0"`
}

func (r *routeRequest) model() *domain.Route {
	return &domain.Route{
		Source:      domain.Airport{ID: r.Source},
		Destination: domain.Airport{ID: r.Destination},
		Distance:    r.Distance,
	}
}

type airplaneTypeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *airplaneTypeRequest) model() *domain.AirplaneType {
	return &domain.AirplaneType{Name: r.Name}
}

type airlineRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *airlineRequest) model() *domain.Airline {
	return &domain.Airline{Name: r.Name}
}

type airplaneRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Rows         int    `json:"rows" binding:"required,min=1"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required,min=1"`
	AirplaneType int64  `json:"airplane_type" binding:"required,gt=0"`
	Airline      *int64 `json:"airline" binding:"omitempty,gt=0"`
}

func (r *airplaneRequest) model() *domain.Airplane {
	a := &domain.Airplane{
		Name:         r.Name,
		Rows:         r.Rows,
		SeatsInRow:   r.SeatsInRow,
		AirplaneType: domain.AirplaneType{ID: r.AirplaneType},
	}
	if r.Airline != nil {
		a.Airline = &domain.Airline{ID: *r.Airline}
	}
	return a
}

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Position  string `json:"position" binding:"required,max=255"`
}

func (r *crewRequest) model() *domain.Crew {
	return &domain.Crew{FirstName: r.FirstName, LastName: r.LastName, Position: r.Position}
}

type ticketClassRequest struct {
	Name               string   `json:"name" binding:"required,oneof=economy business first_class premium_economy"`
	PriceMultiplier    *float64 `json:"price_multiplier" binding:"omitempty,gt=0"`
	BaggageAllowance   *int     `json:"baggage_allowance" binding:"omitempty,min=0"`
	CancellationPolicy string   `json:"cancellation_policy"`
	MealService        bool     `json:"meal_service"`
	PriorityBoarding   bool     `json:"priority_boarding"`
}

func (r *ticketClassRequest) model() *domain.TicketClass {
	tc := &domain.TicketClass{
		Name:               domain.TicketClassName(r.Name),
		PriceMultiplier:    domain.DefaultPriceMultiplier,
		BaggageAllowance:   domain.DefaultBaggageAllowance,
		CancellationPolicy: r.CancellationPolicy,
		MealService:        r.MealService,
		PriorityBoarding:   r.PriorityBoarding,
	}
	if r.PriceMultiplier != nil {
		tc.PriceMultiplier = *r.PriceMultiplier
	}
	if r.BaggageAllowance != nil {
		tc.BaggageAllowance = *r.BaggageAllowance
	}
	return tc
}

type flightRequest struct {
	Route         int64     `json:"route" binding:"required,gt=0"`
	Airplane      int64     `json:"airplane" binding:"required,gt=0"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required,gtfield=DepartureTime"`
	Crew          []int64   `json:"crew" binding:"omitempty,dive,gt=0"`
}

func (r *flightRequest) model() *domain.Flight {
	crew := r.Crew
	if crew == nil {
		crew = []int64{}
	}
	return &domain.Flight{
		RouteID:       r.Route,
		AirplaneID:    r.Airplane,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		CrewIDs:       crew,
	}
}

type ticketRequest struct {
	Row         int     `json:"row"`
	Seat        int     `json:"seat"`
	Flight      int64   `json:"flight" binding:"required,gt=0"`
	TicketClass *string `json:"ticket_class"`
}

type orderRequest struct {
	Tickets []ticketRequest `json:"tickets" binding:"dive"`
}

func (r *orderRequest) tickets() []booking.TicketRequest {
	out := make([]booking.TicketRequest, len(r.Tickets))
	for i, t := range r.Tickets {
		out[i] = booking.TicketRequest{Row: t.Row, Seat: t.Seat, FlightID: t.Flight}
		if t.TicketClass != nil && *t.TicketClass != "" {
			name := domain.TicketClassName(*t.TicketClass)
			out[i].TicketClass = &name
		}
	}
	return out
}

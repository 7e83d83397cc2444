package flights

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context, filter query.FlightFilter, page query.Page) (*query.Result[domain.FlightSummary], error)
	Get(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	// GetFlights reports the listing version it read under; pages are
	// stored back under that version only.
	GetFlights(ctx context.Context, listing string) (*query.Result[domain.FlightSummary], int64, error)
	SetFlights(ctx context.Context, version int64, listing string, page *query.Result[domain.FlightSummary]) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   logrus.FieldLogger
}

// NewFlightService accepts a nil cache; listings then always hit the database.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log logrus.FieldLogger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context, filter query.FlightFilter, page query.Page) (*query.Result[domain.FlightSummary], error) {
	key := filter.Key(page)
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		cached, v, err := s.cache.GetFlights(ctx, key)
		switch {
		case err != nil:
			s.log.WithError(err).Warn("flight cache read failed")
		case cached != nil:
			return cached, nil
		default:
			version, cacheable = v, true
		}
	}

	flights, total, err := s.repo.List(ctx, filter.Where(), page)
	if err != nil {
		return nil, err
	}
	if err := s.annotate(ctx, flights); err != nil {
		return nil, err
	}

	result := query.NewResult(flights, total, page)
	if cacheable {
		if err := s.cache.SetFlights(ctx, version, key, &result); err != nil {
			s.log.WithError(err).Warn("flight cache write failed")
		}
	}
	return &result, nil
}

// annotate fills TicketsAvailable for the whole page with one count query.
func (s *FlightService) annotate(ctx context.Context, flights []domain.FlightSummary) error {
	if len(flights) == 0 {
		return nil
	}
	ids := make([]int64, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}
	booked, err := s.repo.CountTickets(ctx, ids)
	if err != nil {
		return err
	}
	for i := range flights {
		f := &flights[i]
		f.TicketsAvailable = domain.AvailableSeats(f.Layout, booked[f.ID])
		if f.TicketsAvailable < 0 {
			s.log.WithFields(logrus.Fields{
				"flight_id": f.ID,
				"capacity":  f.Layout.Capacity(),
				"booked":    booked[f.ID],
			}).Error("flight is overbooked")
		}
	}
	return nil
}

func (s *FlightService) Get(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	if err := Validate(flight); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, flight)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error) {
	if err := Validate(flight); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, flight)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("flight cache invalidation failed")
	}
}

func Validate(f *domain.Flight) error {
	v := &domain.ValidationError{}
	if f.RouteID <= 0 {
		v.Add("route", "this field is required")
	}
	if f.AirplaneID <= 0 {
		v.Add("airplane", "this field is required")
	}
	if f.DepartureTime.IsZero() {
		v.Add("departure_time", "this field is required")
	}
	if f.ArrivalTime.IsZero() {
		v.Add("arrival_time", "this field is required")
	}
	if !f.DepartureTime.IsZero() && !f.ArrivalTime.IsZero() && !f.ArrivalTime.After(f.DepartureTime) {
		v.Add("arrival_time", "must be later than departure_time")
	}
	for _, id := range f.CrewIDs {
		if id <= 0 {
			v.Add("crew", "invalid pk")
		}
	}
	return v.OrNil()
}

var _ FlightUseCase = (*FlightService)(nil)

// Package catalog holds the admin maintained reference data: airports,
// routes, airplane types, airlines, airplanes, crews and ticket classes.
package catalog

import (
	"context"

	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/sirupsen/logrus"
)

// CatalogUseCase is the CRUD surface of one reference entity.
type CatalogUseCase[T any] interface {
	List(ctx context.Context, where query.Where, page query.Page) (*query.Result[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// FlightsInvalidator drops cached flight listings. Entities that show up
// inside a listing (airports, routes, airplanes, airlines, crews) need it.
type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type options struct {
	flights FlightsInvalidator
	log     logrus.FieldLogger
}

type Option func(*options)

// WithFlightsInvalidator makes successful updates and deletes drop the
// cached flight listings. Failures are logged, never returned.
func WithFlightsInvalidator(flights FlightsInvalidator, log logrus.FieldLogger) Option {
	return func(o *options) {
		o.flights = flights
		o.log = log
	}
}

type Service[T any] struct {
	store    repository.Store[T]
	validate func(*T) error
	opts     options
}

func NewService[T any](store repository.Store[T], validate func(*T) error, opts ...Option) *Service[T] {
	if validate == nil {
		validate = func(*T) error { return nil }
	}
	s := &Service[T]{store: store, validate: validate}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if s.opts.log == nil {
		s.opts.log = logrus.StandardLogger()
	}
	return s
}

func (s *Service[T]) List(ctx context.Context, where query.Where, page query.Page) (*query.Result[T], error) {
	items, total, err := s.store.List(ctx, where, page)
	if err != nil {
		return nil, err
	}
	result := query.NewResult(items, total, page)
	return &result, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.store.Get(ctx, id)
}

func (s *Service[T]) Create(ctx context.Context, item *T) (*T, error) {
	if err := s.validate(item); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, item)
}

func (s *Service[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	if err := s.validate(item); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, id, item)
	if err != nil {
		return nil, err
	}
	s.invalidateFlights(ctx, id)
	return updated, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFlights(ctx, id)
	return nil
}

func (s *Service[T]) invalidateFlights(ctx context.Context, id int64) {
	if s.opts.flights == nil {
		return
	}
	if err := s.opts.flights.InvalidateFlights(ctx); err != nil {
		s.opts.log.WithError(err).WithField("id", id).Warn("failed to invalidate flights cache")
	}
}

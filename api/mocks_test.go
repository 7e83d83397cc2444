package api

import (
	"context"
	"mime/multipart"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a mock implementation of catalog.CatalogUseCase
type MockCatalog[T any] struct {
	mock.Mock
}

func (m *MockCatalog[T]) List(ctx context.Context, where query.Where, page query.Page) (*query.Result[T], error) {
	args := m.Called(ctx, where, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[T]), args.Error(1)
}

func (m *MockCatalog[T]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCatalog[T]) Create(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCatalog[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	args := m.Called(ctx, id, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCatalog[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirlines struct {
	MockCatalog[domain.Airline]
}

func (m *MockAirlines) UploadLogo(ctx context.Context, id int64, fh *multipart.FileHeader) (*domain.Airline, error) {
	args := m.Called(ctx, id, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter query.FlightFilter, page query.Page) (*query.Result[domain.FlightSummary], error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[domain.FlightSummary]), args.Error(1)
}

func (m *MockFlightUseCase) Get(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, id, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateOrder(ctx context.Context, ownerID int64, tickets []booking.TicketRequest) (*domain.Order, error) {
	args := m.Called(ctx, ownerID, tickets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockBookingUseCase) ListOrders(ctx context.Context, ownerID int64, page query.Page) (*query.Result[domain.Order], error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[domain.Order]), args.Error(1)
}

func (m *MockBookingUseCase) GetOrder(ctx context.Context, identity access.Identity, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, identity, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type stubLimiter struct {
	allowed   bool
	remaining int
	err       error
	keys      []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.remaining, s.err
}

func (s *stubLimiter) Limit() int {
	return 5
}

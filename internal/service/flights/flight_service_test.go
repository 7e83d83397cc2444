package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, where query.Where, page query.Page) ([]domain.FlightSummary, int, error) {
	args := m.Called(ctx, where, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.FlightSummary), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) CountTickets(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, flightIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockFlightRepository) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, id int64, flight *domain.Flight) (*domain.Flight, error) {
	args := m.Called(ctx, id, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context, listing string) (*query.Result[domain.FlightSummary], int64, error) {
	args := m.Called(ctx, listing)
	version, _ := args.Get(1).(int64)
	if args.Get(0) == nil {
		return nil, version, args.Error(2)
	}
	return args.Get(0).(*query.Result[domain.FlightSummary]), version, args.Error(2)
}

func (m *MockCache) SetFlights(ctx context.Context, version int64, listing string, page *query.Result[domain.FlightSummary]) error {
	return m.Called(ctx, version, listing, page).Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func summaries() []domain.FlightSummary {
	return []domain.FlightSummary{
		{ID: 1, AirplaneName: "A320", Layout: domain.SeatLayout{Rows: 10, SeatsInRow: 6}},
		{ID: 2, AirplaneName: "Embraer", Layout: domain.SeatLayout{Rows: 2, SeatsInRow: 2}},
		{ID: 3, AirplaneName: "B737", Layout: domain.SeatLayout{Rows: 20, SeatsInRow: 6}},
	}
}

func TestFlightService_ListAnnotatesAvailability(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, hook := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()
	page := query.Page{Number: 1, Size: 10}

	repo.On("List", ctx, query.Where{}, page).Return(summaries(), 3, nil).Once()
	// one grouped query for the whole page; flight 3 has no tickets at all
	repo.On("CountTickets", ctx, []int64{1, 2, 3}).Return(map[int64]int{1: 1, 2: 5}, nil).Once()

	result, err := service.List(ctx, query.FlightFilter{}, page)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Results, 3)
	assert.Equal(t, 59, result.Results[0].TicketsAvailable)
	assert.Equal(t, -1, result.Results[1].TicketsAvailable)
	assert.Equal(t, 120, result.Results[2].TicketsAvailable)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, int64(2), hook.LastEntry().Data["flight_id"])
	repo.AssertExpectations(t)
}

func TestFlightService_ListEmptyPageSkipsCount(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()
	page := query.Page{Number: 4, Size: 10}

	repo.On("List", ctx, mock.Anything, page).Return([]domain.FlightSummary{}, 3, nil).Once()

	result, err := service.List(ctx, query.FlightFilter{}, page)

	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.NotNil(t, result.Results)
	repo.AssertNotCalled(t, "CountTickets", mock.Anything, mock.Anything)
}

func TestFlightService_ListPassesFilter(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()
	page := query.Page{Number: 1, Size: 10}
	route := int64(4)
	filter := query.FlightFilter{RouteID: &route}

	repo.On("List", ctx, filter.Where(), page).Return([]domain.FlightSummary{}, 0, nil).Once()

	_, err := service.List(ctx, filter, page)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFlightService_ListFromCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, cache, logger)
	ctx := context.Background()
	page := query.Page{Number: 1, Size: 10}

	cached := &query.Result[domain.FlightSummary]{Count: 1, Page: 1, PageSize: 10, Results: []domain.FlightSummary{{ID: 9}}}
	cache.On("GetFlights", ctx, "page=1&page_size=10").Return(cached, int64(2), nil).Once()

	result, err := service.List(ctx, query.FlightFilter{}, page)

	require.NoError(t, err)
	assert.Same(t, cached, result)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_ListCacheMissStoresUnderReadVersion(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, cache, logger)
	ctx := context.Background()
	page := query.Page{Number: 1, Size: 10}

	cache.On("GetFlights", ctx, "page=1&page_size=10").Return(nil, int64(4), nil).Once()
	repo.On("List", ctx, query.Where{}, page).Return(summaries()[:1], 1, nil).Once()
	repo.On("CountTickets", ctx, []int64{1}).Return(map[int64]int{}, nil).Once()
	cache.On("SetFlights", ctx, int64(4), "page=1&page_size=10", mock.Anything).Return(nil).Once()

	result, err := service.List(ctx, query.FlightFilter{}, page)

	require.NoError(t, err)
	assert.Equal(t, 60, result.Results[0].TicketsAvailable)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFlightService_ListCacheDownSkipsStore(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	logger, hook := test.NewNullLogger()
	service := NewFlightService(repo, cache, logger)
	ctx := context.Background()
	page := query.Page{Number: 1, Size: 10}

	cache.On("GetFlights", ctx, "page=1&page_size=10").Return(nil, int64(0), errors.New("redis down")).Once()
	repo.On("List", ctx, query.Where{}, page).Return(summaries()[:1], 1, nil).Once()
	repo.On("CountTickets", ctx, []int64{1}).Return(map[int64]int{1: 1}, nil).Once()

	result, err := service.List(ctx, query.FlightFilter{}, page)

	require.NoError(t, err)
	assert.Equal(t, 59, result.Results[0].TicketsAvailable)
	assert.Equal(t, "flight cache read failed", hook.LastEntry().Message)
	cache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestFlightService_ListRepositoryError(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()

	expectedErr := errors.New("database error")
	repo.On("List", ctx, mock.Anything, mock.Anything).Return(nil, 0, expectedErr).Once()

	result, err := service.List(ctx, query.FlightFilter{}, query.Page{Number: 1, Size: 10})
	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)
}

func TestFlightService_Get(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()

	detail := &domain.FlightDetail{ID: 4, TakenPlaces: []domain.SeatPlace{{Row: 1, Seat: 2}}}
	repo.On("GetDetail", ctx, int64(4)).Return(detail, nil).Once()
	repo.On("GetDetail", ctx, int64(5)).Return(nil, domain.ErrNotFound).Once()

	got, err := service.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, detail, got)

	_, err = service.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_CreateInvalidatesCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, cache, logger)
	ctx := context.Background()

	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	flight := &domain.Flight{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour), CrewIDs: []int64{1, 2}}

	repo.On("Create", ctx, flight).Return(&domain.Flight{ID: 11, RouteID: 1, AirplaneID: 2}, nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	created, err := service.Create(ctx, flight)
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFlightService_CreateRejectsArrivalBeforeDeparture(t *testing.T) {
	repo := &MockFlightRepository{}
	logger, _ := test.NewNullLogger()
	service := NewFlightService(repo, nil, logger)
	ctx := context.Background()

	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	_, err := service.Create(ctx, &domain.Flight{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be later than departure_time", verr.Fields["arrival_time"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlightService_UpdateAndDelete(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	logger, hook := test.NewNullLogger()
	service := NewFlightService(repo, cache, logger)
	ctx := context.Background()

	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	flight := &domain.Flight{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: dep.Add(time.Hour)}

	repo.On("Update", ctx, int64(3), flight).Return(&domain.Flight{ID: 3}, nil).Once()
	repo.On("Delete", ctx, int64(3)).Return(nil).Once()
	repo.On("Delete", ctx, int64(4)).Return(domain.ErrNotFound).Once()
	cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Twice()

	_, err := service.Update(ctx, 3, flight)
	require.NoError(t, err)
	assert.Equal(t, "flight cache invalidation failed", hook.LastEntry().Message)

	assert.NoError(t, service.Delete(ctx, 3))
	assert.ErrorIs(t, service.Delete(ctx, 4), domain.ErrNotFound)
	cache.AssertExpectations(t)
}

func TestValidate(t *testing.T) {
	err := Validate(&domain.Flight{CrewIDs: []int64{0}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"route", "airplane", "departure_time", "arrival_time", "crew"} {
		assert.Contains(t, verr.Fields, field)
	}
}

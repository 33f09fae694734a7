package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/shesho2101/ProyectoIntegrador2/internal/domain/entity"
)

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

// NewMockCatalogRepository creates a mock that asserts its expectations on cleanup
func NewMockCatalogRepository(t *testing.T) *MockCatalogRepository {
	m := &MockCatalogRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogRepository) ListHotels(ctx context.Context) ([]entity.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Hotel), args.Error(1)
}

func (m *MockCatalogRepository) GetHotel(ctx context.Context, id string) (*entity.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Hotel), args.Error(1)
}

func (m *MockCatalogRepository) ListBuses(ctx context.Context) ([]entity.Bus, error) {
	args := m.Called(ctx)
	return busesArg(args)
}

func (m *MockCatalogRepository) GetBus(ctx context.Context, id string) (*entity.Bus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bus), args.Error(1)
}

func (m *MockCatalogRepository) BusesByOrigin(ctx context.Context, origin string) ([]entity.Bus, error) {
	return busesArg(m.Called(ctx, origin))
}

func (m *MockCatalogRepository) BusesByDestination(ctx context.Context, destination string) ([]entity.Bus, error) {
	return busesArg(m.Called(ctx, destination))
}

func (m *MockCatalogRepository) BusesByPriceRange(ctx context.Context, min, max float64) ([]entity.Bus, error) {
	return busesArg(m.Called(ctx, min, max))
}

func (m *MockCatalogRepository) BusesByDepartureDate(ctx context.Context, date string) ([]entity.Bus, error) {
	return busesArg(m.Called(ctx, date))
}

func (m *MockCatalogRepository) BusesByType(ctx context.Context, busType string) ([]entity.Bus, error) {
	return busesArg(m.Called(ctx, busType))
}

func (m *MockCatalogRepository) SearchFlights(ctx context.Context, search entity.FlightSearch) (*entity.FlightResults, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlightResults), args.Error(1)
}

func busesArg(args mock.Arguments) ([]entity.Bus, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Bus), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock that asserts its expectations on cleanup
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) Register(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func (m *MockAccountRepository) GetUser(ctx context.Context, token string, id int64) (*entity.User, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockShoppingRepository is a mock of the cart, favorite, opinion and
// reservation repositories
type MockShoppingRepository struct {
	mock.Mock
}

// NewMockShoppingRepository creates a mock that asserts its expectations on cleanup
func NewMockShoppingRepository(t *testing.T) *MockShoppingRepository {
	m := &MockShoppingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockShoppingRepository) GetCart(ctx context.Context, token string, userID int64) ([]entity.CartItem, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CartItem), args.Error(1)
}

func (m *MockShoppingRepository) AddItem(ctx context.Context, token string, item entity.CartItem) (*entity.CartItem, error) {
	args := m.Called(ctx, token, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CartItem), args.Error(1)
}

func (m *MockShoppingRepository) UpdateQuantity(ctx context.Context, token, itemID string, quantity int, total float64) (*entity.CartItem, error) {
	args := m.Called(ctx, token, itemID, quantity, total)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CartItem), args.Error(1)
}

func (m *MockShoppingRepository) RemoveItem(ctx context.Context, token, itemID string) error {
	args := m.Called(ctx, token, itemID)
	return args.Error(0)
}

func (m *MockShoppingRepository) ListFavorites(ctx context.Context, token string, userID int64) ([]entity.Favorite, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Favorite), args.Error(1)
}

func (m *MockShoppingRepository) AddFavorite(ctx context.Context, token string, favorite entity.Favorite) (*entity.Favorite, error) {
	args := m.Called(ctx, token, favorite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *MockShoppingRepository) RemoveFavorite(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockShoppingRepository) CreateOpinion(ctx context.Context, token string, opinion entity.Opinion) (*entity.Opinion, error) {
	args := m.Called(ctx, token, opinion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Opinion), args.Error(1)
}

func (m *MockShoppingRepository) ListReservations(ctx context.Context, token string, userID int64) ([]entity.Reservation, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Reservation), args.Error(1)
}

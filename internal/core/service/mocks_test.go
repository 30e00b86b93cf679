package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
)

// Mocks

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetFavourites(ctx context.Context, userID string) ([]bars.Favourite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bars.Favourite), args.Error(1)
}

func (m *MockRepository) GetMembership(ctx context.Context, userID, placeID string) (*bars.Membership, error) {
	args := m.Called(ctx, userID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bars.Membership), args.Error(1)
}

func (m *MockRepository) GetPlace(ctx context.Context, placeID string) (*bars.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bars.Place), args.Error(1)
}

func (m *MockRepository) CreatePlace(ctx context.Context, place bars.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockRepository) CreateMembership(ctx context.Context, userID, placeID string) (bars.Membership, error) {
	args := m.Called(ctx, userID, placeID)
	return args.Get(0).(bars.Membership), args.Error(1)
}

func (m *MockRepository) DeleteMembership(ctx context.Context, membershipID string) error {
	args := m.Called(ctx, membershipID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (auth.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.User), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, data, ttl)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetPlaceDetails(ctx context.Context, placeID string) (bars.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(bars.PlaceDetails), args.Error(1)
}

// Helper to silence logs
type testWriter struct{}

func (tw *testWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

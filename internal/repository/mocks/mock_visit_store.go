package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/visit-counter/internal/model"
)

// MockVisitStore is a mock repository.VisitStore
type MockVisitStore struct {
	mock.Mock
}

func (m *MockVisitStore) Record(ctx context.Context, addr string) (model.Visit, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(model.Visit), args.Error(1)
}

func (m *MockVisitStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

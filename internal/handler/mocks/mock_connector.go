package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/visit-counter/internal/repository"
)

// MockConnector is a mock handler.Connector
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Acquire(ctx context.Context) (repository.VisitStore, error) {
	args := m.Called(ctx)
	store, _ := args.Get(0).(repository.VisitStore)
	return store, args.Error(1)
}

func (m *MockConnector) Redact(err error) string {
	args := m.Called(err)
	return args.String(0)
}

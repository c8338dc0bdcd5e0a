package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// MockNotaryClient is a mock implementation of port.NotaryClient.
type MockNotaryClient struct {
	mock.Mock
}

func (m *MockNotaryClient) Schedule(ctx context.Context, input *port.NotaryScheduleInput) (*domain.NotarySessionInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotarySessionInfo), args.Error(1)
}

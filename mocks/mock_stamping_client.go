package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStampingClient is a mock implementation of port.StampingClient.
type MockStampingClient struct {
	mock.Mock
}

func (m *MockStampingClient) Stamp(ctx context.Context, submissionID uuid.UUID) (string, error) {
	args := m.Called(ctx, submissionID)
	return args.String(0), args.Error(1)
}

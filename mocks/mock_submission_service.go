package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"notaryflow/internal/domain"
)

// MockSubmissionService is a mock implementation of service.SubmissionService.
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) CreateESign(ctx context.Context, sessionID string) (*domain.SubmissionRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionRecord), args.Error(1)
}

func (m *MockSubmissionService) CreateNotary(ctx context.Context, sessionID string, meta domain.DeviceMeta) (*domain.NotarySessionInfo, error) {
	args := m.Called(ctx, sessionID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotarySessionInfo), args.Error(1)
}

func (m *MockSubmissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionRecord), args.Error(1)
}

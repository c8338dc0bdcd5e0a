package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSubmissionReceipt(ctx context.Context, toEmail, toName, referenceNumber string) error {
	args := m.Called(ctx, toEmail, toName, referenceNumber)
	return args.Error(0)
}

func (m *MockEmailSender) SendNotaryScheduled(ctx context.Context, toEmail, toName, referenceNumber, meetingID string) error {
	args := m.Called(ctx, toEmail, toName, referenceNumber, meetingID)
	return args.Error(0)
}

package noop

import (
	"context"
	"log"

	"notaryflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSubmissionReceipt(_ context.Context, toEmail, toName, referenceNumber string) error {
	log.Printf("[NOOP EMAIL] Submission receipt for %s (%s): ref %s", toName, toEmail, referenceNumber)
	return nil
}

func (s *noopSender) SendNotaryScheduled(_ context.Context, toEmail, toName, referenceNumber, meetingID string) error {
	log.Printf("[NOOP EMAIL] Notary scheduled for %s (%s): ref %s meeting %s", toName, toEmail, referenceNumber, meetingID)
	return nil
}

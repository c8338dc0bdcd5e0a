package port

import "context"

// EmailSender defines the contract for sending confirmation emails.
type EmailSender interface {
	SendSubmissionReceipt(ctx context.Context, toEmail, toName, referenceNumber string) error
	SendNotaryScheduled(ctx context.Context, toEmail, toName, referenceNumber, meetingID string) error
}

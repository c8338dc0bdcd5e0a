package port

import (
	"context"

	"github.com/google/uuid"

	"notaryflow/internal/domain"
)

// SubmissionRepository defines the contract for submission persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.SubmissionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error)
	GetByReference(ctx context.Context, referenceNumber string) (*domain.SubmissionRecord, error)
	UpdateSigning(ctx context.Context, sub *domain.SubmissionRecord) error
	List(ctx context.Context, offset, limit int) ([]domain.SubmissionRecord, int, error)
}

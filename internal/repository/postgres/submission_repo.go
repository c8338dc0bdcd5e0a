package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *domain.SubmissionRecord) error {
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = now
	}

	query := `INSERT INTO submissions (
		id, reference_number, first_name, last_name, email,
		document_type, category, form_data,
		signing_option, uploaded_at, document_url, approved_doc_url, signing_state,
		status, meeting_id, timezone, user_agent,
		submitted_at, approved_at, notarized_at, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10, $11, $12, $13,
		$14, $15, $16, $17,
		$18, $19, $20, $21, $22
	)`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.ReferenceNumber, sub.FirstName, sub.LastName, sub.Email,
		sub.DocumentType, sub.Category, sub.FormData,
		sub.SigningOption, sub.UploadedAt, sub.DocumentURL, sub.ApprovedDocURL, sub.SigningState,
		sub.Status, sub.MeetingID, sub.Timezone, sub.UserAgent,
		sub.SubmittedAt, sub.ApprovedAt, sub.NotarizedAt, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	var sub domain.SubmissionRecord
	err := r.db.GetContext(ctx, &sub,
		"SELECT * FROM submissions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByID: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepo) GetByReference(ctx context.Context, referenceNumber string) (*domain.SubmissionRecord, error) {
	var sub domain.SubmissionRecord
	err := r.db.GetContext(ctx, &sub,
		"SELECT * FROM submissions WHERE reference_number = $1", referenceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByReference: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepo) UpdateSigning(ctx context.Context, sub *domain.SubmissionRecord) error {
	sub.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET
			approved_doc_url = $1, signing_state = $2, status = $3,
			approved_at = $4, updated_at = $5
		 WHERE id = $6`,
		sub.ApprovedDocURL, sub.SigningState, sub.Status,
		sub.ApprovedAt, sub.UpdatedAt,
		sub.ID)
	if err != nil {
		return fmt.Errorf("submissionRepo.UpdateSigning: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *submissionRepo) List(ctx context.Context, offset, limit int) ([]domain.SubmissionRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM submissions")
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List count: %w", err)
	}

	var subs []domain.SubmissionRecord
	err = r.db.SelectContext(ctx, &subs,
		`SELECT * FROM submissions
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List: %w", err)
	}
	return subs, total, nil
}

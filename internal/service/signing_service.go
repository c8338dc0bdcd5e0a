package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// SigningService executes the e-sign pathway: it drives the stamping
// collaborator and records the resulting artifact.
type SigningService interface {
	Sign(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error)
	DocumentURL(ctx context.Context, id uuid.UUID, version domain.DocumentVersion) (string, error)
}

type signingService struct {
	repo     port.SubmissionRepository
	stamping port.StampingClient
}

// NewSigningService creates a new SigningService implementation.
func NewSigningService(repo port.SubmissionRepository, stamping port.StampingClient) SigningService {
	return &signingService{repo: repo, stamping: stamping}
}

// Sign applies the signature stamp to a submission's document. Signing is
// idempotent in the failure direction only: a failed stamp leaves the record
// untouched, a second sign of a signed record is rejected.
func (s *signingService) Sign(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("signingService.Sign: %w", err)
	}

	if sub.SigningState == domain.SigningStateSigned {
		return nil, domain.ErrAlreadySigned
	}

	stampedURL, err := s.stamping.Stamp(ctx, sub.ID)
	if err != nil {
		log.Printf("signingService.Sign: stamping %s failed: %v", sub.ID, err)
		return nil, fmt.Errorf("signingService.Sign: %w", err)
	}

	sub.ApprovedDocURL = stampedURL
	sub.SigningState = domain.SigningStateSigned
	sub.Status = domain.SubmissionStatusApproved
	sub.ApprovedAt = domain.FlexTimeFromSeconds(time.Now().UTC().Unix())

	if err := s.repo.UpdateSigning(ctx, sub); err != nil {
		return nil, fmt.Errorf("signingService.Sign: %w", err)
	}
	return sub, nil
}

// DocumentURL returns the stored artifact URL for the requested version.
func (s *signingService) DocumentURL(ctx context.Context, id uuid.UUID, version domain.DocumentVersion) (string, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("signingService.DocumentURL: %w", err)
	}

	var url string
	switch version {
	case domain.DocumentVersionOriginal:
		url = sub.DocumentURL
	case domain.DocumentVersionStamped:
		url = sub.ApprovedDocURL
	default:
		return "", domain.ErrInvalidVersion
	}

	if url == "" {
		return "", domain.ErrNoDocumentURL
	}
	return url, nil
}

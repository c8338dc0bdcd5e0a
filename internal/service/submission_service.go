package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"notaryflow/internal/doctype"
	"notaryflow/internal/domain"
	"notaryflow/internal/forms"
	"notaryflow/internal/port"
	"notaryflow/internal/wizard"
)

// SubmissionService finalizes wizard sessions into submission records. The
// e-sign pathway creates the record locally; the notary pathway delegates
// record creation to the notary-session service.
type SubmissionService interface {
	CreateESign(ctx context.Context, sessionID string) (*domain.SubmissionRecord, error)
	CreateNotary(ctx context.Context, sessionID string, meta domain.DeviceMeta) (*domain.NotarySessionInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error)
}

type submissionService struct {
	repo    port.SubmissionRepository
	session *wizard.Session
	notary  port.NotaryClient
	email   port.EmailSender
}

// NewSubmissionService creates a new SubmissionService implementation.
func NewSubmissionService(
	repo port.SubmissionRepository,
	session *wizard.Session,
	notaryClient port.NotaryClient,
	emailSender port.EmailSender,
) SubmissionService {
	return &submissionService{
		repo:    repo,
		session: session,
		notary:  notaryClient,
		email:   emailSender,
	}
}

// newReferenceNumber derives a short human-copyable reference from a UUID.
func newReferenceNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "NF-" + raw[:10]
}

// validateSigningOption is the only gate on the e-sign pathway; field
// completeness is the wizard's concern there.
func validateSigningOption(st *wizard.State) *domain.ValidationError {
	if opt := domain.SigningOption(st.Steps["3"]["signingOption"]); !opt.Valid() {
		verr := &domain.ValidationError{}
		verr.Add(domain.StepSigningOption, "signingOption")
		return verr
	}
	return nil
}

// validateSession checks the cross-step requirements of the notary pathway.
// Returns nil when everything needed to finalize is present.
func validateSession(st *wizard.State) *domain.ValidationError {
	verr := &domain.ValidationError{}

	for _, f := range []string{"firstName", "lastName", "email"} {
		if st.Steps["1"][f] == "" {
			verr.Add(domain.StepPersonalInfo, f)
		}
	}

	if st.SelectedType == "" {
		verr.Add(domain.StepDocumentType, "documentType")
	} else if schema, ok := forms.SchemaFor(st.SelectedType); ok {
		result := schema.Validate(st.DocumentForms[st.SelectedType])
		for _, f := range result.Missing {
			verr.Add(domain.StepDocumentType, f)
		}
	}

	if opt := domain.SigningOption(st.Steps["3"]["signingOption"]); !opt.Valid() {
		verr.Add(domain.StepSigningOption, "signingOption")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *submissionService) CreateESign(ctx context.Context, sessionID string) (*domain.SubmissionRecord, error) {
	st, err := s.session.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submissionService.CreateESign: %w", err)
	}

	if verr := validateSigningOption(st); verr != nil {
		return nil, verr
	}

	fields := st.DocumentForms[st.SelectedType]
	formData, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("submissionService.CreateESign: marshal form data: %w", err)
	}

	now := time.Now().UTC()
	sub := &domain.SubmissionRecord{
		ID:              uuid.New(),
		ReferenceNumber: newReferenceNumber(),
		FirstName:       st.Steps["1"]["firstName"],
		LastName:        st.Steps["1"]["lastName"],
		Email:           st.Steps["1"]["email"],
		DocumentType:    st.SelectedType,
		Category:        doctype.ParentBranch(st.SelectedType),
		FormData:        formData,
		SigningOption:   domain.SigningOptionESign,
		SigningState:    domain.SigningStateUnsigned,
		Status:          domain.SubmissionStatusPending,
		SubmittedAt:     now,
	}

	if st.SelectedType == doctype.CustomDocumentLeaf {
		sub.DocumentURL = fields["documentUrl"]
		sub.UploadedAt = &now
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("submissionService.CreateESign: %w", err)
	}

	// The session id is only recorded once the record exists, so a failed
	// create leaves the session re-finalizable.
	if err := s.session.SetSubmissionID(ctx, sessionID, sub.ID.String()); err != nil {
		log.Printf("submissionService.CreateESign: persisting submission id to session %s: %v", sessionID, err)
	}

	if err := s.email.SendSubmissionReceipt(ctx, sub.Email, sub.FirstName, sub.ReferenceNumber); err != nil {
		log.Printf("submissionService.CreateESign: sending receipt for %s: %v", sub.ReferenceNumber, err)
	}

	return sub, nil
}

func (s *submissionService) CreateNotary(ctx context.Context, sessionID string, meta domain.DeviceMeta) (*domain.NotarySessionInfo, error) {
	st, err := s.session.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submissionService.CreateNotary: %w", err)
	}

	// The collaborator is never called with an incomplete payload.
	if verr := validateSession(st); verr != nil {
		return nil, verr
	}

	input := &port.NotaryScheduleInput{
		PersonalInfo:  st.Steps["1"],
		DocumentType:  st.SelectedType,
		Category:      doctype.ParentBranch(st.SelectedType),
		SigningOption: domain.SigningOptionNotary,
		DocumentForms: st.DocumentForms,
		Timezone:      meta.Timezone,
		UserAgent:     meta.UserAgent,
	}

	info, err := s.notary.Schedule(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("submissionService.CreateNotary: %w", err)
	}

	if err := s.session.SetSubmissionID(ctx, sessionID, info.ID); err != nil {
		log.Printf("submissionService.CreateNotary: persisting submission id to session %s: %v", sessionID, err)
	}

	if err := s.email.SendNotaryScheduled(ctx, st.Steps["1"]["email"], st.Steps["1"]["firstName"], info.ReferenceNumber, info.MeetingID); err != nil {
		log.Printf("submissionService.CreateNotary: sending confirmation for %s: %v", info.ReferenceNumber, err)
	}

	return info, nil
}

func (s *submissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionRecord, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submissionService.GetByID: %w", err)
	}
	return sub, nil
}

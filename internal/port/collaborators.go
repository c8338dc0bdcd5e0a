package port

import (
	"context"

	"github.com/google/uuid"

	"notaryflow/internal/domain"
)

// StampingClient calls the stamping collaborator, which applies a signature
// footer to every page of the submission's PDF and returns the new artifact
// URL.
type StampingClient interface {
	Stamp(ctx context.Context, submissionID uuid.UUID) (string, error)
}

// NotaryScheduleInput is the full accumulated wizard payload sent to the
// notary-session collaborator, plus client device metadata.
type NotaryScheduleInput struct {
	PersonalInfo  map[string]string            `json:"personal_info"`
	DocumentType  string                       `json:"document_type"`
	Category      string                       `json:"category"`
	SigningOption domain.SigningOption         `json:"signing_option"`
	DocumentForms map[string]map[string]string `json:"document_forms"`
	Timezone      string                       `json:"timezone"`
	UserAgent     string                       `json:"user_agent"`
}

// NotaryClient schedules a live notarization session. The collaborator owns
// record creation on this pathway and returns the scheduling identifiers.
type NotaryClient interface {
	Schedule(ctx context.Context, input *NotaryScheduleInput) (*domain.NotarySessionInfo, error)
}

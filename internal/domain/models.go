package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmissionRecord is the durable representation of a finalized document
// request. One record is created per finalized wizard pass; a prior
// in-memory submission id is always discarded before the signing-method step,
// so revisiting the step produces a new record.
type SubmissionRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ReferenceNumber string    `db:"reference_number" json:"reference_number"`

	// Step 1: personal information.
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`

	// Step 2: document type selection. Category is the branch the concrete
	// type was narrowed from, empty for top-level leaves.
	DocumentType string          `db:"document_type" json:"document_type"`
	Category     string          `db:"category" json:"category"`
	FormData     json.RawMessage `db:"form_data" json:"form_data"`

	// Step 3: signing method.
	SigningOption SigningOption `db:"signing_option" json:"signing_option"`
	UploadedAt    *time.Time    `db:"uploaded_at" json:"uploaded_at"`

	// DocumentURL is set only for the upload-your-document leaf.
	DocumentURL    string       `db:"document_url" json:"document_url"`
	ApprovedDocURL string       `db:"approved_doc_url" json:"approved_doc_url"`
	SigningState   SigningState `db:"signing_state" json:"signing_state"`

	Status    SubmissionStatus `db:"status" json:"status"`
	MeetingID string           `db:"meeting_id" json:"meeting_id"`
	Timezone  string           `db:"timezone" json:"timezone"`
	UserAgent string           `db:"user_agent" json:"user_agent"`

	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	// ApprovedAt and NotarizedAt are written by collaborators in
	// heterogeneous shapes; stored as JSONB and normalized via FlexTime.
	ApprovedAt  FlexTime `db:"approved_at" json:"approved_at"`
	NotarizedAt FlexTime `db:"notarized_at" json:"notarized_at"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SignedDate computes the record's authoritative signing date:
// notarizedAt, then approvedAt, then submittedAt as fallback. The second
// return is false when none of them yields a valid date.
func (r *SubmissionRecord) SignedDate() (CalendarDate, bool) {
	if d, ok := r.NotarizedAt.Date(); ok {
		return d, true
	}
	if d, ok := r.ApprovedAt.Date(); ok {
		return d, true
	}
	if !r.SubmittedAt.IsZero() {
		return DateOf(r.SubmittedAt), true
	}
	return CalendarDate{}, false
}

// AuthenticatedDocumentView is the ephemeral result of a successful
// reference-number authentication, handed to the preview/payment flow.
type AuthenticatedDocumentView struct {
	DocumentID      uuid.UUID         `json:"document_id"`
	ReferenceNumber string            `json:"reference_number"`
	DocumentData    *SubmissionRecord `json:"document_data"`
	DateSigned      string            `json:"date_signed"` // DD-MM-YYYY
}

// NotarySessionInfo is the scheduling result returned by the notary-session
// collaborator.
type NotarySessionInfo struct {
	ID              string `json:"id"`
	MeetingID       string `json:"meeting_id"`
	ReferenceNumber string `json:"reference_number"`
}

// DeviceMeta carries client device metadata forwarded to the notary service.
type DeviceMeta struct {
	Timezone  string `json:"timezone"`
	UserAgent string `json:"user_agent"`
}

package domain

// SigningOption selects the pathway a submission is finalized through.
type SigningOption string

const (
	SigningOptionESign  SigningOption = "esign"
	SigningOptionNotary SigningOption = "notary"
)

// Valid reports whether the option is one of the two known pathways.
func (o SigningOption) Valid() bool {
	return o == SigningOptionESign || o == SigningOptionNotary
}

// SubmissionStatus is the lifecycle status of a submission. It is written by
// external collaborators (reviewers, the notary service) and is read-only in
// this service.
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusApproved  SubmissionStatus = "approved"
	SubmissionStatusNotarized SubmissionStatus = "notarized"
)

// SigningState tracks the e-sign executor's progress for a submission.
// signed is terminal.
type SigningState string

const (
	SigningStateUnsigned   SigningState = "unsigned"
	SigningStateInProgress SigningState = "signing"
	SigningStateSigned     SigningState = "signed"
)

// DocumentVersion selects which artifact URL of a submission to address.
type DocumentVersion string

const (
	DocumentVersionOriginal DocumentVersion = "original"
	DocumentVersionStamped  DocumentVersion = "stamped"
)

// WizardStep identifies one of the ordered wizard steps.
type WizardStep int

const (
	StepPersonalInfo  WizardStep = 1
	StepDocumentType  WizardStep = 2
	StepSigningOption WizardStep = 3
)

// StepLabel returns the short name used in validation messages ("step1"...).
func StepLabel(step WizardStep) string {
	switch step {
	case StepPersonalInfo:
		return "step1"
	case StepDocumentType:
		return "step2"
	case StepSigningOption:
		return "step3"
	default:
		return "unknown"
	}
}

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDateUnavailable   = errors.New("no parseable signed date on record")
	ErrAlreadySigned     = errors.New("submission is already signed")
	ErrInvalidVersion    = errors.New("unknown document version")
	ErrNoDocumentURL     = errors.New("submission has no document artifact")
	ErrCollaborator      = errors.New("collaborator call failed")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed      = errors.New("file upload to storage failed")
	ErrSessionCorrupt    = errors.New("wizard session state could not be decoded")
	ErrUnknownDocType    = errors.New("unknown document type")
	ErrBranchNotConcrete = errors.New("document type is a category, not a concrete type")
)

// ValidationError aggregates missing required fields, grouped by wizard step.
// It is always recoverable locally and is never sent to a collaborator.
type ValidationError struct {
	// Missing maps a step label ("step1") to the field names absent or blank.
	Missing map[string][]string
}

func (e *ValidationError) Error() string {
	steps := make([]string, 0, len(e.Missing))
	for step := range e.Missing {
		steps = append(steps, step)
	}
	sort.Strings(steps)

	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		fields := append([]string(nil), e.Missing[step]...)
		sort.Strings(fields)
		parts = append(parts, fmt.Sprintf("%s: missing %s", step, strings.Join(fields, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a missing field under the given step.
func (e *ValidationError) Add(step WizardStep, field string) {
	if e.Missing == nil {
		e.Missing = make(map[string][]string)
	}
	label := StepLabel(step)
	e.Missing[label] = append(e.Missing[label], field)
}

// HasErrors reports whether any missing field was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Missing) > 0
}

// DateMismatchError is returned when the entered date does not match the
// record's signed date. Expected carries the correctly formatted date so the
// user can self-correct.
type DateMismatchError struct {
	Expected string // DD-MM-YYYY
}

func (e *DateMismatchError) Error() string {
	return fmt.Sprintf("entered date does not match the document's signed date (expected %s)", e.Expected)
}

// Package wizard implements the multi-step submission flow state machine.
// All state lives in a key-value store keyed by session id, so any replica
// can serve any step.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"notaryflow/internal/doctype"
	"notaryflow/internal/domain"
	"notaryflow/internal/forms"
	"notaryflow/internal/port"
)

// State is the full serialized wizard state for one session.
type State struct {
	// Steps maps a step number ("1".."3") to its accumulated field values.
	Steps map[string]map[string]string `json:"steps"`
	// DocumentForms holds per-document-type field maps so switching types
	// never leaks values between templates.
	DocumentForms map[string]map[string]string `json:"document_forms"`
	// SelectedType is the concrete document type, empty until a leaf is
	// chosen.
	SelectedType string `json:"selected_type"`
	// SubSelection is the branch currently being narrowed, empty outside
	// sub-selection mode.
	SubSelection string `json:"sub_selection"`
	// SubmissionID is set once the session's submission record exists.
	SubmissionID string `json:"submission_id"`
}

func newState() *State {
	return &State{
		Steps:         map[string]map[string]string{"1": {}, "2": {}, "3": {}},
		DocumentForms: map[string]map[string]string{},
	}
}

// normalize repairs nil maps after JSON decoding of older payloads.
func (s *State) normalize() {
	if s.Steps == nil {
		s.Steps = map[string]map[string]string{}
	}
	for _, k := range []string{"1", "2", "3"} {
		if s.Steps[k] == nil {
			s.Steps[k] = map[string]string{}
		}
	}
	if s.DocumentForms == nil {
		s.DocumentForms = map[string]map[string]string{}
	}
}

// Session manages wizard state for browser sessions backed by a KV store.
type Session struct {
	store port.KeyValueStore
	ttl   time.Duration
}

// NewSession creates a session manager with the given state TTL.
func NewSession(store port.KeyValueStore, ttl time.Duration) *Session {
	return &Session{store: store, ttl: ttl}
}

func stateKey(sessionID string) string {
	return "wizard:" + sessionID
}

// load fetches and decodes the session state. A missing key yields a fresh
// state. Corrupt state is discarded and replaced with a fresh one so the user
// can restart the flow instead of being stuck. Any other store failure is
// returned as-is: the stored state must never be overwritten because of a
// transient read error.
func (s *Session) load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.store.Get(ctx, stateKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return newState(), nil
		}
		return nil, fmt.Errorf("wizard.load: %w", err)
	}

	st := &State{}
	if err := json.Unmarshal([]byte(raw), st); err != nil {
		log.Printf("wizard.load: discarding corrupt state for session %s: %v", sessionID, err)
		return newState(), nil
	}
	st.normalize()

	// Older clients stored a branch id directly as the selected type.
	// Rehydrate it into sub-selection mode so the user is prompted to pick
	// a concrete sub-kind.
	if st.SelectedType != "" {
		if _, kind, ok := doctype.Resolve(st.SelectedType); ok && kind == doctype.KindBranch {
			st.SubSelection = st.SelectedType
			st.SelectedType = ""
		}
	}
	return st, nil
}

func (s *Session) save(ctx context.Context, sessionID string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("wizard.save: marshal state: %w", err)
	}
	if err := s.store.Set(ctx, stateKey(sessionID), string(data), s.ttl); err != nil {
		return fmt.Errorf("wizard.save: persist state: %w", err)
	}
	return nil
}

// Snapshot returns the current state for the session.
func (s *Session) Snapshot(ctx context.Context, sessionID string) (*State, error) {
	return s.load(ctx, sessionID)
}

// SetStep merges the given fields into the step's accumulated values and
// persists the state. Existing fields not present in the update are kept.
func (s *Session) SetStep(ctx context.Context, sessionID string, step string, fields map[string]string) (*State, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.Steps[step] == nil {
		st.Steps[step] = map[string]string{}
	}
	for k, v := range fields {
		st.Steps[step][k] = v
	}
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetStep returns the accumulated fields for one step.
func (s *Session) GetStep(ctx context.Context, sessionID string, step string) (map[string]string, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fields := st.Steps[step]
	if fields == nil {
		fields = map[string]string{}
	}
	return fields, nil
}

// SelectDocumentType processes a catalog selection. Choosing a branch enters
// sub-selection mode and clears any concrete selection; choosing a leaf
// commits it as the selected type and loads that type's persisted field map
// (or the schema defaults on first visit).
func (s *Session) SelectDocumentType(ctx context.Context, sessionID, typeID string) (*State, error) {
	node, kind, ok := doctype.Resolve(typeID)
	if !ok {
		return nil, fmt.Errorf("wizard.SelectDocumentType: %q: unknown type", typeID)
	}

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if kind == doctype.KindBranch {
		st.SubSelection = node.ID
		st.SelectedType = ""
	} else {
		st.SelectedType = node.ID
		st.SubSelection = ""

		if st.DocumentForms[node.ID] == nil {
			if schema, ok := forms.SchemaFor(node.ID); ok {
				st.DocumentForms[node.ID] = schema.InitialFields()
			} else {
				st.DocumentForms[node.ID] = map[string]string{}
			}
		}
		st.Steps["2"]["documentType"] = node.ID
		st.Steps["2"]["category"] = doctype.ParentBranch(node.ID)
	}

	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GoBack exits sub-selection mode, returning to the top-level catalog. It is
// a no-op when not narrowing a branch.
func (s *Session) GoBack(ctx context.Context, sessionID string) (*State, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.SubSelection == "" {
		return st, nil
	}
	st.SubSelection = ""
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetDocumentFormData merges field updates into the currently selected
// type's form map. Values for other types are untouched.
func (s *Session) SetDocumentFormData(ctx context.Context, sessionID string, fields map[string]string) (*State, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.SelectedType == "" {
		return nil, fmt.Errorf("wizard.SetDocumentFormData: no document type selected")
	}
	if st.DocumentForms[st.SelectedType] == nil {
		st.DocumentForms[st.SelectedType] = map[string]string{}
	}
	for k, v := range fields {
		st.DocumentForms[st.SelectedType][k] = v
	}
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetDocumentFormData returns the field map for the currently selected type,
// along with the type id. The map is empty when no type is selected.
func (s *Session) GetDocumentFormData(ctx context.Context, sessionID string) (string, map[string]string, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if st.SelectedType == "" {
		return "", map[string]string{}, nil
	}
	fields := st.DocumentForms[st.SelectedType]
	if fields == nil {
		fields = map[string]string{}
	}
	return st.SelectedType, fields, nil
}

// ClearSigningState resets step 3 and discards the in-memory submission id.
// Called whenever the user lands on the signing-method step so a revisit
// always produces a fresh record.
func (s *Session) ClearSigningState(ctx context.Context, sessionID string) (*State, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Steps["3"] = map[string]string{}
	st.SubmissionID = ""
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetSubmissionID records the id of the submission created for this session.
func (s *Session) SetSubmissionID(ctx context.Context, sessionID, submissionID string) error {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	st.SubmissionID = submissionID
	return s.save(ctx, sessionID, st)
}

// Reset deletes all state for the session.
func (s *Session) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, stateKey(sessionID)); err != nil {
		return fmt.Errorf("wizard.Reset: %w", err)
	}
	return nil
}

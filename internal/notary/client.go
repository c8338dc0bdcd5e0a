// Package notary calls the external notary-session service, which schedules a
// live notarization meeting and owns record creation for that pathway.
package notary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notaryflow/internal/config"
	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// Client implements port.NotaryClient over HTTP.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a notary client from config.
func NewClient(cfg *config.NotaryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.URL,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type scheduleRequest struct {
	PersonalInfo  map[string]string            `json:"personalInfo"`
	DocumentType  string                       `json:"documentType"`
	Category      string                       `json:"category,omitempty"`
	SigningOption string                       `json:"signingOption"`
	DocumentForms map[string]map[string]string `json:"documentForms"`
	Timezone      string                       `json:"timezone"`
	UserAgent     string                       `json:"userAgent"`
}

type scheduleResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID              string `json:"id"`
		MeetingID       string `json:"meetingId"`
		ReferenceNumber string `json:"referenceNumber"`
	} `json:"data"`
	Error string `json:"error"`
}

// Schedule sends the accumulated wizard payload to the notary service and
// returns the scheduling identifiers. All failure modes wrap
// domain.ErrCollaborator.
func (c *Client) Schedule(ctx context.Context, input *port.NotaryScheduleInput) (*domain.NotarySessionInfo, error) {
	bodyBytes, err := json.Marshal(scheduleRequest{
		PersonalInfo:  input.PersonalInfo,
		DocumentType:  input.DocumentType,
		Category:      input.Category,
		SigningOption: string(input.SigningOption),
		DocumentForms: input.DocumentForms,
		Timezone:      input.Timezone,
		UserAgent:     input.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling notary service: %w", domain.ErrCollaborator)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading notary response: %w", domain.ErrCollaborator)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("notary service error (status %d): %s: %w",
			resp.StatusCode, string(respBody), domain.ErrCollaborator)
	}

	var out scheduleResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding notary response: %w", domain.ErrCollaborator)
	}
	if !out.Success {
		return nil, fmt.Errorf("notary scheduling failed: %s: %w", out.Error, domain.ErrCollaborator)
	}
	if out.Data.ID == "" {
		return nil, fmt.Errorf("notary scheduling succeeded without record id: %w", domain.ErrCollaborator)
	}

	return &domain.NotarySessionInfo{
		ID:              out.Data.ID,
		MeetingID:       out.Data.MeetingID,
		ReferenceNumber: out.Data.ReferenceNumber,
	}, nil
}

var _ port.NotaryClient = (*Client)(nil)

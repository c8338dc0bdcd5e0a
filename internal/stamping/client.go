// Package stamping calls the external stamping collaborator, which renders a
// signature footer onto every page of a submission's PDF.
package stamping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"notaryflow/internal/config"
	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// Client implements port.StampingClient over HTTP.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a stamping client from config.
func NewClient(cfg *config.StampingConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
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
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type stampRequest struct {
	SubmissionID string `json:"submissionId"`
}

type stampResponse struct {
	Success        bool   `json:"success"`
	ApprovedDocURL string `json:"approvedDocURL"`
	Error          string `json:"error"`
	Details        string `json:"details"`
}

// Stamp asks the collaborator to produce the stamped artifact for the given
// submission and returns its URL. All failure modes wrap
// domain.ErrCollaborator.
func (c *Client) Stamp(ctx context.Context, submissionID uuid.UUID) (string, error) {
	bodyBytes, err := json.Marshal(stampRequest{SubmissionID: submissionID.String()})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling stamping service: %w", domain.ErrCollaborator)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading stamping response: %w", domain.ErrCollaborator)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stamping service error (status %d): %s: %w",
			resp.StatusCode, string(respBody), domain.ErrCollaborator)
	}

	var out stampResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decoding stamping response: %w", domain.ErrCollaborator)
	}
	if !out.Success {
		return "", fmt.Errorf("stamping failed: %s: %s: %w", out.Error, out.Details, domain.ErrCollaborator)
	}
	if out.ApprovedDocURL == "" {
		return "", fmt.Errorf("stamping succeeded without artifact URL: %w", domain.ErrCollaborator)
	}
	return out.ApprovedDocURL, nil
}

var _ port.StampingClient = (*Client)(nil)

// Package scheduler is the HTTP client for the external scheduling
// engine. The engine runs the actual timetable generation pipeline;
// this API only submits jobs and receives results on a callback.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/cadencehq/cadence-api/internal/config"
)

// GenerateRequest describes a generation job for one batch.
type GenerateRequest struct {
	TimetableID uuid.UUID `json:"timetable_id"`
	BatchID     uuid.UUID `json:"batch_id"`
	CallbackURL string    `json:"callback_url"`
}

type generateResponse struct {
	JobID string `json:"job_id"`
}

type engineError struct {
	Message string `json:"message"`
}

type Client struct {
	http *resty.Client
}

// New builds an engine client. When TokenURL is configured the client
// authenticates with OAuth2 client credentials; otherwise requests go
// out unauthenticated (local development engines).
func New(cfg config.SchedulerConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.EngineURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client.SetTransport(newOAuthTransport(cc, client.GetClient().Transport))
	}

	return &Client{http: client}
}

// SubmitJob asks the engine to generate a timetable and returns the
// engine's job id. The engine reports completion asynchronously via
// the callback URL.
func (c *Client) SubmitJob(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/v1/jobs")
	if err != nil {
		return "", fmt.Errorf("failed to reach scheduling engine: %w", err)
	}

	if resp.IsError() {
		var engErr engineError
		if jsonErr := json.Unmarshal(resp.Body(), &engErr); jsonErr == nil && engErr.Message != "" {
			return "", fmt.Errorf("scheduling engine rejected job: %s", engErr.Message)
		}
		return "", fmt.Errorf("scheduling engine returned status %d", resp.StatusCode())
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode engine response: %w", err)
	}
	if result.JobID == "" {
		return "", fmt.Errorf("scheduling engine returned an empty job id")
	}

	return result.JobID, nil
}

// CancelJob tells the engine to abandon an in-flight generation job.
func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/v1/jobs/" + jobID)
	if err != nil {
		return fmt.Errorf("failed to reach scheduling engine: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("scheduling engine returned status %d", resp.StatusCode())
	}
	return nil
}

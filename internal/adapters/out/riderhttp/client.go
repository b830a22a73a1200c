// Package riderhttp implements the rider catalog port as an HTTP client
// against the external rider service.
package riderhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cargotrack/internal/core/ports"
	"cargotrack/internal/pkg/errs"
)

// Client looks riders up over HTTP. Every request carries an explicit
// timeout; expiry and transport failures surface as dependency-unavailable
// errors so assignment can degrade predictably when the catalog is down.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.RiderCatalog = (*Client)(nil)

// NewClient creates a rider catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseUrl")
	}
	if timeout <= 0 {
		return nil, errs.NewValueIsRequiredError("timeout")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// riderResponse is the wire shape of the rider service payload.
type riderResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	State string `json:"state"`
}

// GetRider fetches a single rider by identifier.
func (c *Client) GetRider(ctx context.Context, riderID string) (ports.Rider, error) {
	if riderID == "" {
		return ports.Rider{}, errs.NewValueIsRequiredError("riderId")
	}

	url := fmt.Sprintf("%s/api/v1/riders/%s", c.baseURL, riderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Rider{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Rider{}, errs.NewDependencyUnavailableErrorWithCause("rider service", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.Rider{}, errs.NewObjectNotFoundError("rider", riderID)
	case resp.StatusCode != http.StatusOK:
		return ports.Rider{}, errs.NewDependencyUnavailableErrorWithCause("rider service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body riderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Rider{}, errs.NewDependencyUnavailableErrorWithCause("rider service", err)
	}

	return ports.Rider{
		ID:    body.ID,
		Name:  body.Name,
		Phone: body.Phone,
		Email: body.Email,
		State: body.State,
	}, nil
}

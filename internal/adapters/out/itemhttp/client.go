// Package itemhttp implements the dispatcher's item lookup against the
// tracking core's synchronous HTTP surface.
package itemhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cargotrack/internal/notifier"
	"cargotrack/internal/pkg/errs"
)

// Client resolves applicant contact details for an item over HTTP. Every
// request carries an explicit timeout; expiry is treated as lookup failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ notifier.ItemLookup = (*Client)(nil)

// NewClient creates an item lookup client for the given base URL.
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

// itemResponse is the subset of the item payload the dispatcher needs.
type itemResponse struct {
	ItemNumber     string `json:"itemNumber"`
	ApplicantName  string `json:"applicantName"`
	ApplicantPhone string `json:"applicantPhone"`
	ApplicantEmail string `json:"applicantEmail"`
}

// GetItem fetches one item's applicant contact by item identifier.
func (c *Client) GetItem(ctx context.Context, itemID string) (notifier.ItemContact, error) {
	if itemID == "" {
		return notifier.ItemContact{}, errs.NewValueIsRequiredError("itemId")
	}

	url := fmt.Sprintf("%s/api/v1/items/%s", c.baseURL, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return notifier.ItemContact{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return notifier.ItemContact{}, errs.NewDependencyUnavailableErrorWithCause("item service", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notifier.ItemContact{}, errs.NewObjectNotFoundError("item", itemID)
	case resp.StatusCode != http.StatusOK:
		return notifier.ItemContact{}, errs.NewDependencyUnavailableErrorWithCause("item service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return notifier.ItemContact{}, errs.NewDependencyUnavailableErrorWithCause("item service", err)
	}

	return notifier.ItemContact{
		ItemNumber:     body.ItemNumber,
		ApplicantName:  body.ApplicantName,
		ApplicantPhone: body.ApplicantPhone,
		ApplicantEmail: body.ApplicantEmail,
	}, nil
}

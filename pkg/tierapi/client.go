package tierapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ai-studybuddy-be/internal/apperr"
)

// Client queries the tier collaborator. Results are advisory: callers fall
// back to cached entitlements when this service is unreachable.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type tierResponse struct {
	Tier string `json:"tier"`
}

func (c *Client) GetTier(ctx context.Context, identity string) (string, error) {
	endpoint := fmt.Sprintf("%s/tier?identity=%s", c.BaseURL, url.QueryEscape(identity))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindNetworkUnavailable, "tier service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Newf(apperr.KindNetworkUnavailable, "tier service error: status %d", resp.StatusCode)
	}

	var tier tierResponse
	if err := json.NewDecoder(resp.Body).Decode(&tier); err != nil {
		return "", apperr.Wrap(apperr.KindNetworkUnavailable, "tier service returned an unreadable body", err)
	}
	return tier.Tier, nil
}

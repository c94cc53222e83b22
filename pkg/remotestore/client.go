package remotestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ai-studybuddy-be/internal/apperr"
)

// Client talks to the remote persistence collaborator. The remote store is
// authoritative whenever reachable; callers decide whether a failure here
// degrades to the local store.
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

// --- Wire structs ---

type CardPayload struct {
	Id         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"type"`
}

type SetPayload struct {
	Id           string            `json:"id,omitempty"`
	Identity     string            `json:"identity"`
	Title        string            `json:"title"`
	OriginalText string            `json:"original_text"`
	Flashcards   []CardPayload     `json:"flashcards"`
	CardStatuses map[string]string `json:"card_statuses"`
	TotalCards   int               `json:"total_cards"`
	TierRequired string            `json:"tier_required"`
	CreatedAt    time.Time         `json:"created_at,omitempty"`
}

type SetSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	TotalCards   int       `json:"total_cards"`
	TierRequired string    `json:"tier_required"`
	IsLocked     bool      `json:"is_locked"`
	CreatedAt    time.Time `json:"created_at"`
}

type createResponse struct {
	Id string `json:"id"`
}

type listResponse struct {
	Sets []SetSummary `json:"flashcard_sets"`
}

// --- Operations ---

func (c *Client) CreateSet(ctx context.Context, payload *SetPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/sets", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindNetworkUnavailable, "remote store unreachable", err)
	}
	defer resp.Body.Close()

	if err := c.statusError(resp); err != nil {
		return "", err
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", apperr.Wrap(apperr.KindNetworkUnavailable, "remote store returned an unreadable body", err)
	}
	return created.Id, nil
}

func (c *Client) ListSets(ctx context.Context, identity string, includeLocked bool) ([]SetSummary, error) {
	endpoint := fmt.Sprintf("%s/sets?identity=%s&includeLocked=%t",
		c.BaseURL, url.QueryEscape(identity), includeLocked)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkUnavailable, "remote store unreachable", err)
	}
	defer resp.Body.Close()

	if err := c.statusError(resp); err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkUnavailable, "remote store returned an unreadable body", err)
	}
	return list.Sets, nil
}

func (c *Client) GetSet(ctx context.Context, id, identity string) (*SetPayload, error) {
	endpoint := fmt.Sprintf("%s/sets/%s?identity=%s",
		c.BaseURL, url.PathEscape(id), url.QueryEscape(identity))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkUnavailable, "remote store unreachable", err)
	}
	defer resp.Body.Close()

	if err := c.statusError(resp); err != nil {
		return nil, err
	}

	var set SetPayload
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, apperr.Wrap(apperr.KindNetworkUnavailable, "remote store returned an unreadable body", err)
	}
	return &set, nil
}

func (c *Client) DeleteSet(ctx context.Context, id, identity string) error {
	endpoint := fmt.Sprintf("%s/sets/%s?identity=%s",
		c.BaseURL, url.PathEscape(id), url.QueryEscape(identity))

	req, err := http.NewRequestWithContext(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindNetworkUnavailable, "remote store unreachable", err)
	}
	defer resp.Body.Close()

	return c.statusError(resp)
}

// statusError maps remote statuses onto the error taxonomy. Access denied
// and not found must stay distinguishable: denial means the set exists but
// the caller's tier does not unlock it.
func (c *Client) statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusForbidden:
		return apperr.New(apperr.KindAccessDenied, "set requires a higher tier")
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, "set not found")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Newf(apperr.KindNetworkUnavailable,
			"remote store error: status %d, body: %s", resp.StatusCode, string(body))
	}
}

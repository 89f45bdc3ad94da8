package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the League client's local REST API. The client presents a
// self-signed certificate, so TLS verification is disabled on purpose.
type Client struct {
	baseURL    string
	password   string
	httpClient *http.Client
}

// NewClient creates a client for the given credentials.
func NewClient(creds Credentials) *Client {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL:  fmt.Sprintf("https://127.0.0.1:%d", creds.Port),
		password: creds.Password,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// APIError is a non-2xx response from the client API. Ban and pick attempts
// branch on it to advance to the next candidate.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client API error %d: %s", e.Status, e.Body)
}

// do performs an authenticated request, encoding body and decoding the
// response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("riot", c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// PatchAction completes (or, with completed=false, provisionally declares) a
// champion select action.
func (c *Client) PatchAction(ctx context.Context, actionID, championID int, completed bool) error {
	body := map[string]any{
		"championId": championID,
		"completed":  completed,
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/lol-champ-select/v1/session/actions/%d", actionID), body, nil)
}

// PatchMySelection updates the local player's summoner spells. Nil slots are
// left untouched by the client.
func (c *Client) PatchMySelection(ctx context.Context, spell1, spell2 *int) error {
	body := map[string]any{}
	if spell1 != nil {
		body["spell1Id"] = *spell1
	}
	if spell2 != nil {
		body["spell2Id"] = *spell2
	}
	if len(body) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPatch, "/lol-champ-select/v1/session/my-selection", body, nil)
}

// PerkPage is a rune page as the client API represents it.
type PerkPage struct {
	ID              int64  `json:"id,omitempty"`
	Name            string `json:"name"`
	PrimaryStyleID  int    `json:"primaryStyleId"`
	SubStyleID      int    `json:"subStyleId"`
	SelectedPerkIDs []int  `json:"selectedPerkIds"`
	Current         bool   `json:"current"`
	IsDeletable     bool   `json:"isDeletable,omitempty"`
}

// GetPerkPages lists the player's rune pages.
func (c *Client) GetPerkPages(ctx context.Context) ([]PerkPage, error) {
	var pages []PerkPage
	if err := c.do(ctx, http.MethodGet, "/lol-perks/v1/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// PostPerkPage creates a rune page.
func (c *Client) PostPerkPage(ctx context.Context, page PerkPage) error {
	return c.do(ctx, http.MethodPost, "/lol-perks/v1/pages", page, nil)
}

// DeletePerkPage removes a rune page.
func (c *Client) DeletePerkPage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/lol-perks/v1/pages/%d", id), nil, nil)
}

// GetGameflowPhase returns the current gameflow phase, e.g. "ChampSelect" or
// "InGame".
func (c *Client) GetGameflowPhase(ctx context.Context) (string, error) {
	var phase string
	if err := c.do(ctx, http.MethodGet, "/lol-gameflow/v1/gameflow-phase", nil, &phase); err != nil {
		return "", err
	}
	return phase, nil
}

// AcceptReadyCheck acknowledges a matchmaking ready check.
func (c *Client) AcceptReadyCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/lol-matchmaking/v1/ready-check/accept", map[string]any{}, nil)
}

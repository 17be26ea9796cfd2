// Package backend is a minimal client for the companion stats API. It covers
// the lookup endpoints the enrichment step needs and implements the
// pipeline's Store contract for remote existence checks and submissions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sillypears/rivals2-log-parser/internal/model"
)

// Client is a minimal companion-backend API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the backend at host:port with the given request
// timeout.
func New(host string, port int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithBaseURL is used by tests to point the client at an httptest server.
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	c := New("localhost", 0, timeout)
	c.baseURL = baseURL
	return c
}

// get performs a GET against the backend and decodes the response body into
// out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Ping probes backend connectivity via /current_tier, the cheapest endpoint
// that exercises the database behind it.
func (c *Client) Ping(ctx context.Context) error {
	var resp envelope[CurrentTier]
	return c.get(ctx, "/current_tier", &resp)
}

// Characters fetches the character lookup list.
func (c *Client) Characters(ctx context.Context) ([]Character, error) {
	var resp envelope[[]Character]
	if err := c.get(ctx, "/characters", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Stages fetches the stage lookup list.
func (c *Client) Stages(ctx context.Context) ([]Stage, error) {
	var resp envelope[[]Stage]
	if err := c.get(ctx, "/stages", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Moves fetches the final-move lookup list.
func (c *Client) Moves(ctx context.Context) ([]Move, error) {
	var resp envelope[[]Move]
	if err := c.get(ctx, "/movelist", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// TopMoves fetches the most-used final moves.
func (c *Client) TopMoves(ctx context.Context) ([]TopMove, error) {
	var resp envelope[[]TopMove]
	if err := c.get(ctx, "/movelist/top", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CurrentTier fetches the player's current standing.
func (c *Client) CurrentTier(ctx context.Context) (*CurrentTier, error) {
	var resp envelope[CurrentTier]
	if err := c.get(ctx, "/current_tier", &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// OpponentNames fetches previously recorded opponent names.
func (c *Client) OpponentNames(ctx context.Context) ([]string, error) {
	var resp envelope[struct {
		Names []string `json:"names"`
	}]
	if err := c.get(ctx, "/opponent_names", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Names, nil
}

// MatchExists asks the backend whether the counter is already recorded for
// the season containing date.
func (c *Client) MatchExists(ctx context.Context, gameNumber int, date time.Time) (bool, error) {
	q := url.Values{}
	q.Set("ranked_game_number", fmt.Sprint(gameNumber))
	if !date.IsZero() {
		q.Set("match_date", date.Format(time.DateTime))
	}
	var resp envelope[matchExistsData]
	if err := c.get(ctx, "/match-exists?"+q.Encode(), &resp); err != nil {
		return false, err
	}
	return resp.Data.Exists, nil
}

// InsertMatch submits one match record.
func (c *Client) InsertMatch(ctx context.Context, rec model.MatchRecord) error {
	body, err := json.Marshal(newInsertPayload(rec))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/insert-match", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST /insert-match: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST /insert-match: HTTP %d", resp.StatusCode)
	}
	return nil
}

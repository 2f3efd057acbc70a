// Package client provides the HTTP client the terminal watcher uses to poll
// the counter server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/alexrttr/qt-table-increment/internal/config"
	"github.com/alexrttr/qt-table-increment/model"
)

// Client polls the counter server's read endpoints.
type Client struct {
	config     *config.WatchConfig
	httpClient *http.Client
}

func New(cfg *config.WatchConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.ClientTimeout},
	}
}

// Rate is the server's rate readout: the numeric reading plus the
// ready-to-display string.
type Rate struct {
	model.RateReading
	Display string `json:"display"`
}

// Snapshot fetches the current counter collection.
func (c *Client) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot

	resp, err := c.get(ctx, "/counters")
	if err != nil {
		return snap, err
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return snap, fmt.Errorf("unexpected status for /counters: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding /counters response: %w", err)
	}
	return snap, nil
}

// Rate fetches the latest rate reading. ok is false while the server has no
// reading yet.
func (c *Client) Rate(ctx context.Context) (Rate, bool, error) {
	var rate Rate

	resp, err := c.get(ctx, "/rate")
	if err != nil {
		return rate, false, err
	}
	defer drainAndClose(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		return rate, false, nil
	case http.StatusOK:
	default:
		return rate, false, fmt.Errorf("unexpected status for /rate: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&rate); err != nil {
		return rate, false, fmt.Errorf("decoding /rate response: %w", err)
	}
	return rate, true, nil
}

// AddCounter asks the server to append a counter with the given value.
func (c *Client) AddCounter(ctx context.Context, value int64) error {
	body := fmt.Sprintf(`{"value": %d}`, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.ServerAddr+"/counters", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending add: %w", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status for add: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.ServerAddr+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	return resp, nil
}

func drainAndClose(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
)

// RoomPath is the backend endpoint holding the single stored layout.
const RoomPath = "/api/room"

// Store persists whole layouts. Saving replaces whatever was stored before.
type Store interface {
	SaveLayout(ctx context.Context, records []Record) error
	LoadLayout(ctx context.Context) ([]Record, error)
}

// Client is a Store backed by the room HTTP API.
type Client struct {
	base    string
	http    *client.Client
	timeout time.Duration
}

// NewClient returns a client for the backend at baseURL, e.g. "http://localhost:3000".
// timeout <= 0 leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    client.New(),
		timeout: timeout,
	}
}

// URL returns the full endpoint address.
func (c *Client) URL() string {
	return c.base + RoomPath
}

// SaveLayout posts records as a JSON array.
func (c *Client) SaveLayout(ctx context.Context, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	resp, err := c.http.Post(c.URL(), client.Config{
		Ctx:     ctx,
		Body:    body,
		Header:  map[string]string{"Content-Type": "application/json"},
		Timeout: c.timeout,
	})
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	defer resp.Close()

	if code := resp.StatusCode(); code != http.StatusOK && code != http.StatusCreated {
		return fmt.Errorf("save layout: %s", statusError(code, resp.Body()))
	}
	return nil
}

// LoadLayout fetches the stored layout. A backend with nothing stored yields an empty slice.
func (c *Client) LoadLayout(ctx context.Context) ([]Record, error) {
	resp, err := c.http.Get(c.URL(), client.Config{
		Ctx:     ctx,
		Header:  map[string]string{"Accept": "application/json"},
		Timeout: c.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	defer resp.Close()

	if code := resp.StatusCode(); code != http.StatusOK {
		return nil, fmt.Errorf("load layout: %s", statusError(code, resp.Body()))
	}
	var records []Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// statusError extracts the {"error": ...} message the backend sends with failures.
func statusError(code int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return fmt.Sprintf("status %d: %s", code, payload.Error)
	}
	return fmt.Sprintf("status %d", code)
}

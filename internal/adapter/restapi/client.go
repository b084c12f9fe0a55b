package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopcore/admin-service/internal/repository"
)

// Client is a thin JSON client for one resource collection of the backend
// store (json-server style): GET/POST on the collection, GET/PUT/DELETE on
// /{id}, and exact-match filtering via ?field=value. PUT is a full-record
// replace, never a partial patch.
type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
}

func NewClient(baseURL, collection string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		collection: collection,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) collectionURL() string {
	return fmt.Sprintf("%s/%s", c.baseURL, c.collection)
}

func (c *Client) recordURL(id string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.collection, url.PathEscape(id))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request body: %w", c.collection, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.collection, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", repository.ErrRequestFailed, method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", repository.ErrNotFound, method, rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s returned status %d", repository.ErrRequestFailed, method, rawURL, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", c.collection, err)
		}
	}
	return nil
}

// List fetches every record of the collection.
func (c *Client) List(ctx context.Context, out interface{}) error {
	return c.do(ctx, http.MethodGet, c.collectionURL(), nil, out)
}

// FilterByField fetches the records whose field exactly matches value.
func (c *Client) FilterByField(ctx context.Context, field, value string, out interface{}) error {
	u := fmt.Sprintf("%s?%s=%s", c.collectionURL(), url.QueryEscape(field), url.QueryEscape(value))
	return c.do(ctx, http.MethodGet, u, nil, out)
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, id string, out interface{}) error {
	return c.do(ctx, http.MethodGet, c.recordURL(id), nil, out)
}

// Create POSTs the record and decodes the saved record returned by the
// backend.
func (c *Client) Create(ctx context.Context, record, out interface{}) error {
	return c.do(ctx, http.MethodPost, c.collectionURL(), record, out)
}

// Replace PUTs the complete record. Callers must send the full merged
// object; the backend overwrites, it does not patch.
func (c *Client) Replace(ctx context.Context, id string, record, out interface{}) error {
	return c.do(ctx, http.MethodPut, c.recordURL(id), record, out)
}

// Remove deletes the record by id.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordURL(id), nil, nil)
}

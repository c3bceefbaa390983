package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/invadm/invadm/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response body is read when
	// extracting the backend's error message.
	maxErrorBody = 64 * 1024
)

// Client issues requests against an inventory backend. It carries no base
// URL: every operation takes the base URL as a parameter so the caller's
// current configuration is always the one in effect.
type Client struct {
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client
}

// NewClient creates a client with the default timeout.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// ListItems retrieves all inventory items.
// An empty or missing response body is returned as an empty list.
func (c *Client) ListItems(ctx context.Context, baseURL string) ([]Item, error) {
	body, err := c.do(ctx, http.MethodGet, joinURL(baseURL, "/inventory/"), nil)
	if err != nil {
		return nil, err
	}

	items := []Item{}
	if len(body) > 0 {
		// Tolerate an undecodable success body the same way an empty
		// body is tolerated: the list is simply empty.
		_ = json.Unmarshal(body, &items)
	}

	logging.Debug("Fetched inventory", zap.Int("count", len(items)))
	return items, nil
}

// CreateItem creates a new inventory item and returns the backend's copy,
// including the assigned ID. A success response without a decodable item is
// a contract error: the caller cannot proceed without the new ID.
func (c *Client) CreateItem(ctx context.Context, baseURL string, fields ItemFields) (*Item, error) {
	body, err := c.do(ctx, http.MethodPost, joinURL(baseURL, "/inventory/"), fields)
	if err != nil {
		return nil, err
	}

	item, ok := decodeItem(body)
	if !ok {
		return nil, NewContractError("backend did not return the created item")
	}

	logging.Info("Item created", zap.Int("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// UpdateItem replaces the writable fields of the item with the given ID and
// returns the backend's updated copy. Same contract rule as CreateItem.
func (c *Client) UpdateItem(ctx context.Context, baseURL string, id int, fields ItemFields) (*Item, error) {
	body, err := c.do(ctx, http.MethodPut, joinURL(baseURL, fmt.Sprintf("/inventory/%d", id)), fields)
	if err != nil {
		return nil, err
	}

	item, ok := decodeItem(body)
	if !ok {
		return nil, NewContractError("backend did not return the updated item")
	}

	logging.Info("Item updated", zap.Int("id", item.ID))
	return item, nil
}

// DeleteItem deletes the item with the given ID. Any 2xx response counts as
// success regardless of body content.
func (c *Client) DeleteItem(ctx context.Context, baseURL string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, joinURL(baseURL, fmt.Sprintf("/inventory/%d", id)), nil)
	if err != nil {
		return err
	}

	logging.Info("Item deleted", zap.Int("id", id))
	return nil
}

// CreatePaste uploads text to the backend's pastebin and returns the paste
// URL and expiry.
func (c *Client) CreatePaste(ctx context.Context, baseURL, text string) (*Paste, error) {
	payload := struct {
		Text string `json:"text"`
	}{Text: text}

	body, err := c.do(ctx, http.MethodPost, joinURL(baseURL, "/pastebin"), payload)
	if err != nil {
		return nil, err
	}

	var paste Paste
	if len(body) == 0 || json.Unmarshal(body, &paste) != nil || paste.URL == "" {
		return nil, NewContractError("backend did not return a paste URL")
	}

	logging.Info("Paste created", zap.String("url", paste.URL))
	return &paste, nil
}

// FetchEnvironment retrieves the backend's environment report.
func (c *Client) FetchEnvironment(ctx context.Context, baseURL string) (Environment, error) {
	body, err := c.do(ctx, http.MethodGet, joinURL(baseURL, "/environment"), nil)
	if err != nil {
		return nil, err
	}

	env := Environment{}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &env)
	}
	return env, nil
}

// CreateLogMessage asks the backend to emit a log message at the given
// level and returns its acknowledgement.
func (c *Client) CreateLogMessage(ctx context.Context, baseURL, level, message string) (*LogReceipt, error) {
	payload := struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}{Level: level, Message: message}

	body, err := c.do(ctx, http.MethodPost, joinURL(baseURL, "/log"), payload)
	if err != nil {
		return nil, err
	}

	var receipt LogReceipt
	if len(body) == 0 || json.Unmarshal(body, &receipt) != nil || receipt.Status == "" {
		return nil, NewContractError("backend did not acknowledge the log message")
	}
	return &receipt, nil
}

// HealthCheck retrieves the backend's health report.
func (c *Client) HealthCheck(ctx context.Context, baseURL string) (*Health, error) {
	body, err := c.do(ctx, http.MethodGet, joinURL(baseURL, "/healthcheck"), nil)
	if err != nil {
		return nil, err
	}

	var health Health
	if len(body) == 0 || json.Unmarshal(body, &health) != nil || health.Status == "" {
		return nil, NewContractError("backend did not return a health report")
	}
	return &health, nil
}

// do performs a single request and returns the raw success body.
// Non-2xx responses are converted to an API error with the backend's
// message extracted; request failures become transport errors.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, NewTransportError("failed to encode request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, NewTransportError("failed to create request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogRequest(method, url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewTransportError(err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogResponse(method, url, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extractAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError("failed to read response body", err)
	}
	return body, nil
}

// extractAPIError builds an API error from a non-2xx response. The body is
// expected to optionally carry {"error": "..."}; anything else falls back
// to the HTTP status text. A malformed error body is never itself an error.
func extractAPIError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return NewAPIError(resp.StatusCode, payload.Error)
	}
	return NewAPIError(resp.StatusCode, "")
}

// decodeItem decodes a success body as an item. Following the backend
// contract, an empty or undecodable body means "no item returned" rather
// than a parse failure.
func decodeItem(body []byte) (*Item, bool) {
	if len(body) == 0 {
		return nil, false
	}
	var item Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, false
	}
	if item.ID == 0 && item.Name == "" {
		return nil, false
	}
	return &item, true
}

// joinURL joins a base URL and a path without doubling slashes. The base
// URL is user-supplied text, so it may or may not carry a trailing slash.
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client forwards validated requests to the main service, carrying the
// acting user's id in the sharer header and relaying the response as-is.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a forwarding client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Result is a relayed upstream response.
type Result struct {
	Status int
	Body   []byte
}

// Forward sends the request upstream. A nil userID omits the sharer
// header; a nil body sends no payload.
func (c *Client) Forward(ctx context.Context, method, path string, userID *int64, query url.Values, body any) (*Result, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-Sharer-User-Id", strconv.FormatInt(*userID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return &Result{Status: resp.StatusCode, Body: raw}, nil
}

package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the local backend the widget talks to when nothing else is configured.
const DefaultURL = "http://127.0.0.1:5000/api/chat"

// ErrRequestFailed covers every way a chat round trip can fail: transport, status and decoding.
var ErrRequestFailed = errors.New("chat request failed")

// maxErrorBody bounds how much of a failed response ends up in the error.
const maxErrorBody = 512

type request struct {
	Message string `json:"message"`
}

type response struct {
	Reply *string `json:"reply"`
}

// Client posts user messages to the chat endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves the transport default in place.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			hc := *c.httpClient
			hc.Timeout = timeout
			c.httpClient = &hc
		}
	}
}

// New creates a client for the endpoint at url.
func New(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{url: url, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Send posts message and returns the backend reply.
// Any failure is reported as an error wrapping ErrRequestFailed.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(request{Message: message})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, bytes.TrimSpace(raw))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	if parsed.Reply == nil {
		return "", fmt.Errorf("%w: response has no reply field", ErrRequestFailed)
	}

	return *parsed.Reply, nil
}

// Package api is the chat client's view of the MindHeaven HTTP backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/mindheaven/mindheaven/backend/internal/model/mood"
	"github.com/mindheaven/mindheaven/backend/internal/model/resource"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Path, e.Code)
}

// ChatResponse is the body of POST /chat. MoodAnalysis is nil when the
// server sent none.
type ChatResponse struct {
	Reply        string         `json:"reply"`
	IsCrisis     bool           `json:"is_crisis"`
	MoodAnalysis *mood.Analysis `json:"mood_analysis,omitempty"`
}

type moodHistoryResponse struct {
	Moods []mood.Sample `json:"moods"`
}

// Client talks JSON to the backend. The cookie jar keeps the server-side
// session across calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return NewWithHTTPClient(baseURL, &http.Client{Jar: jar, Timeout: timeout}), nil
}

// NewWithHTTPClient uses httpClient as is.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Chat sends one user message.
func (c *Client) Chat(ctx context.Context, message string) (ChatResponse, error) {
	var out ChatResponse
	err := c.do(ctx, http.MethodPost, "/chat", map[string]string{"message": message}, &out)
	return out, err
}

// MoodHistory returns the recent mood samples, oldest first.
func (c *Client) MoodHistory(ctx context.Context) ([]mood.Sample, error) {
	var out moodHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/mood_history", nil, &out); err != nil {
		return nil, err
	}
	return out.Moods, nil
}

// ClearConversation asks the server to drop the chat history.
func (c *Client) ClearConversation(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/clear_conversation", struct{}{}, nil)
}

// Resources returns the helpline directory.
func (c *Client) Resources(ctx context.Context) (resource.Directory, error) {
	var out resource.Directory
	err := c.do(ctx, http.MethodGet, "/resources", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Package feedclient is a Go client for the snapfeed API. Besides the plain
// request methods it carries the client-side state a feed UI needs: an
// optimistic like toggle, an offset pager and a scroll trigger.
package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"go.uber.org/zap"
)

// TokenSource supplies the session token sent as a bearer credential.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message)
}

// Client talks to the snapfeed HTTP API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger

	maxRetries int
	retryBase  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSyncRetry sets how often SyncUser retries and the first backoff delay.
func WithSyncRetry(maxRetries int, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
		maxRetries: 3,
		retryBase:  time.Second,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPosts fetches one feed page.
func (c *Client) ListPosts(ctx context.Context, limit, offset int) (*models.FeedPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page models.FeedPage
	if err := c.do(ctx, http.MethodGet, "/api/posts?"+q.Encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &page, nil
}

func (c *Client) GetPost(ctx context.Context, postID string) (*models.PostWithUser, error) {
	var resp models.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(postID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return resp.Post, nil
}

func (c *Client) Like(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodPost, "/api/likes", models.LikeRequest{PostID: postID}, nil); err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

func (c *Client) Unlike(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/likes", models.LikeRequest{PostID: postID}, nil); err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

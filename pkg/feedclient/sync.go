package feedclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"go.uber.org/zap"
)

// SyncUser registers the signed-in account with the API. Transport failures
// and 5xx responses are retried with exponential backoff (base, 2*base, ...);
// any 4xx is final.
func (c *Client) SyncUser(ctx context.Context) (*models.SyncUserResponse, error) {
	for attempt := 0; ; attempt++ {
		var resp models.SyncUserResponse
		err := c.do(ctx, http.MethodPost, "/api/sync-user", nil, &resp)
		if err == nil {
			return &resp, nil
		}
		if !retryable(ctx, err) || attempt >= c.maxRetries {
			return nil, fmt.Errorf("sync user: %w", err)
		}

		delay := c.retryBase << attempt
		c.logger.Warn("sync user failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := c.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("sync user: %w", err)
		}
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return true
}

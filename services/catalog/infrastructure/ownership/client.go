// Package ownership is the HTTP client for the external ownership service,
// which holds user game libraries. A circuit breaker fast-fails calls while
// the service is down; callers still see a hard error either way.
package ownership

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	domain "github.com/ghuser/gamecatalog/services/catalog/domain"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

const requestTimeout = 5 * time.Second

// Client implements repositories.OwnershipService over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient returns a Client for the ownership service at baseURL.
// The breaker opens after 5 consecutive failures and probes again after 30s.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ownership-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// ListByUser fetches the user's library. Every failure mode — transport
// error, non-2xx status, open breaker — wraps domain.ErrOwnershipUnavailable.
func (c *Client) ListByUser(ctx context.Context, userID uuid.UUID) ([]repositories.OwnershipRecord, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOwnershipUnavailable, err)
	}
	return result.([]repositories.OwnershipRecord), nil
}

func (c *Client) fetch(ctx context.Context, userID uuid.UUID) ([]repositories.OwnershipRecord, error) {
	url := fmt.Sprintf("%s/libraries/user/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var records []repositories.OwnershipRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode library response: %w", err)
	}
	return records, nil
}

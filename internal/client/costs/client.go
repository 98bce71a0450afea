// Package costs is the client for the platform's cost-data service. Only
// the overview call is modelled here; its job in this layer is to honor
// the account-scope contract on every request it issues.
package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/scope"
	"github.com/mkraev/costlens/internal/common"
)

// Overview is the cost summary for one period.
type Overview struct {
	TotalCost          float64  `json:"total_cost"`
	Currency           string   `json:"currency"`
	PreviousPeriodCost *float64 `json:"previous_period_cost"`
	ChangePercent      *float64 `json:"change_percent"`
}

// TokenSource yields the live session token for outbound requests.
type TokenSource interface {
	Token() string
}

// Client fetches scoped cost data.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
	}
}

// Overview fetches the cost overview for the date range, restricted to the
// given scope. An empty scope means the user has no accessible accounts:
// the call short-circuits to a zero overview without touching the network,
// so an empty scope can never widen into "all accounts".
func (c *Client) Overview(ctx context.Context, s scope.Scope, startDate, endDate, granularity string) (*Overview, error) {
	if s.IsEmpty() {
		return &Overview{}, nil
	}

	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("granularity", granularity)
	q.Set("account_ids", s.Param())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/costs/overview?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authority.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var o Overview
		if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode overview: %w", err)
		}
		return &o, nil
	case http.StatusUnauthorized:
		return nil, authority.ErrUnauthorized
	case http.StatusForbidden:
		return nil, authority.ErrScopeDenied
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &authority.StatusError{StatusCode: resp.StatusCode, Detail: string(body)}
	}
}

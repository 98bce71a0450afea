package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mkraev/costlens/internal/client/models"
	"github.com/mkraev/costlens/internal/common"
)

// HTTPClient talks JSON over HTTP to the platform API. The session token is
// opaque to the client; it is attached as a bearer header and never parsed.
type HTTPClient struct {
	baseURL   string
	userAgent string
	http      *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a client for the API rooted at baseURL
// (e.g. "https://costs.example.com"). userAgent identifies this install in
// the authority's session records.
func NewHTTPClient(baseURL, userAgent string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// apiError is the platform's error body: {"detail": "..."}.
type apiError struct {
	Detail string `json:"detail"`
}

func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var e apiError
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Detail
}

// do issues one JSON request and decodes a 200 response into out (skipped
// when out is nil). Non-2xx statuses map to the sentinel taxonomy; transport
// failures map to ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrScopeDenied)
	default:
		return &StatusError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// Login does not use do(): rejected credentials need the authority's detail
// text preserved verbatim, and both 401 and 403 (disabled/locked account)
// count as a credentials rejection on this endpoint.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	data, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var lr loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
			return "", nil, fmt.Errorf("failed to decode login response: %w", err)
		}
		c.SetToken(lr.AccessToken)
		return lr.AccessToken, lr.User, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", nil, &InvalidCredentialsError{Detail: readDetail(resp.Body)}
	default:
		return "", nil, &StatusError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Accounts(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := c.do(ctx, http.MethodGet, "/api/admin/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (f SessionFilter) values() url.Values {
	q := url.Values{}
	if f.UserID != 0 {
		q.Set("user_id", strconv.FormatInt(f.UserID, 10))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *HTTPClient) Sessions(ctx context.Context, filter SessionFilter) ([]*models.SessionRecord, error) {
	var sessions []*models.SessionRecord
	if err := c.do(ctx, http.MethodGet, "/api/admin/sessions", filter.values(), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) LoginHistory(ctx context.Context, filter SessionFilter) ([]*models.LoginHistoryEntry, error) {
	var entries []*models.LoginHistoryEntry
	if err := c.do(ctx, http.MethodGet, "/api/admin/login-history", filter.values(), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) RevokeSession(ctx context.Context, sessionID int64) error {
	path := fmt.Sprintf("/api/admin/sessions/%d/revoke", sessionID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

func (c *HTTPClient) RevokeAllSessions(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/admin/sessions/revoke-all/%d", userID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

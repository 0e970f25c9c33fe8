// Package client is a typed HTTP client for the room booking API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	maxResponseBytes      = 1 << 20
)

type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	token          string
	requestTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	c := &Client{
		baseURL:        parsed,
		httpClient:     http.DefaultClient,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Token returns the bearer token attached to requests.
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the bearer token attached to requests.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Login exchanges credentials for a token and attaches it to the client.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &result); err != nil {
		return LoginResult{}, err
	}
	if result.Token == "" {
		return LoginResult{}, errors.New("login response missing token")
	}
	c.token = result.Token
	return result, nil
}

// Logout revokes the attached token.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return ErrUnauthorized
	}
	if err := c.do(ctx, http.MethodPost, "/logout", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var payload struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Sessions, nil
}

// DefaultSession returns the current-or-next session. A zero now uses the server clock.
func (c *Client) DefaultSession(ctx context.Context, now time.Time) (Session, error) {
	query := url.Values{}
	if !now.IsZero() {
		query.Set("now", now.Format(time.RFC3339))
	}
	var payload struct {
		Session Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodGet, "/sessions/default", query, nil, &payload); err != nil {
		return Session{}, err
	}
	return payload.Session, nil
}

func (c *Client) Partition(ctx context.Context, sessionID string) (Partition, error) {
	var payload Partition
	path := "/sessions/" + url.PathEscape(sessionID) + "/rooms"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return Partition{}, err
	}
	return payload, nil
}

func (c *Client) Rooms(ctx context.Context) ([]Room, error) {
	var payload struct {
		Rooms []Room `json:"rooms"`
	}
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Rooms, nil
}

func (c *Client) Availability(ctx context.Context, roomID, sessionID string) (bool, error) {
	query := url.Values{}
	query.Set("session_id", sessionID)
	var payload struct {
		Available bool `json:"available"`
	}
	path := "/rooms/" + url.PathEscape(roomID) + "/availability"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
		return false, err
	}
	return payload.Available, nil
}

// Book reserves the room for the session. A taken pair yields ErrAlreadyBooked.
func (c *Client) Book(ctx context.Context, roomID, sessionID string) (Booking, error) {
	var payload struct {
		Booking Booking `json:"booking"`
	}
	body := map[string]string{"room_id": roomID, "session_id": sessionID}
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, body, &payload); err != nil {
		return Booking{}, err
	}
	return payload.Booking, nil
}

func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var payload struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Bookings, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		ErrorCode string            `json:"error_code"`
		Message   string            `json:"message"`
		Errors    map[string]string `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Code = payload.ErrorCode
		apiErr.Message = payload.Message
		apiErr.FieldErrors = payload.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

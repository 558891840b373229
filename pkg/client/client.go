// Package client is a typed Go client for the workforce scheduler HTTP API.
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
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxFailures = 5
	defaultOpenTimeout = 10 * time.Second
)

// ErrCircuitOpen is returned without contacting the server while the
// breaker is open.
var ErrCircuitOpen = errors.New("client: circuit open")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token, e.g. one kept from an earlier sign-in.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithBreaker replaces the default breaker settings. Name, IsSuccessful and
// ReadyToTrip are filled in when left empty.
func WithBreaker(st gobreaker.Settings) Option {
	return func(c *Client) { c.settings = st }
}

type Client struct {
	baseURL  string
	http     *http.Client
	settings gobreaker.Settings
	br       *gobreaker.CircuitBreaker

	mu    sync.RWMutex
	token string
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		settings: gobreaker.Settings{
			MaxRequests: 1,
			Timeout:     defaultOpenTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.settings.Name == "" {
		c.settings.Name = "scheduler-api"
	}
	if c.settings.ReadyToTrip == nil {
		c.settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= defaultMaxFailures
		}
	}
	if c.settings.IsSuccessful == nil {
		c.settings.IsSuccessful = isSuccessful
	}
	c.br = gobreaker.NewCircuitBreaker(c.settings)
	return c
}

// isSuccessful keeps client mistakes (4xx) from tripping the breaker. Only
// transport failures and 5xx answers count.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return errors.Is(err, context.Canceled)
}

// Token returns the bearer token in use, empty before sign-in.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BreakerState exposes the breaker for health displays.
func (c *Client) BreakerState() gobreaker.State {
	return c.br.State()
}

// --- Auth ---

type SignInResult struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// SignIn authenticates and keeps the returned token for later calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out SignInResult
	if err := c.do(ctx, http.MethodPost, "/auth/sign-in", nil, body, &out); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return &out, nil
}

// SignOut closes the server session and forgets the token.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/sign-out", nil, nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return nil
}

// --- Calendar ---

// Board fetches the admin calendar board.
func (c *Client) Board(ctx context.Context, date time.Time, view calendar.Granularity) (*ports.Board, error) {
	return c.board(ctx, "/v1/calendar", date, view)
}

// MyBoard fetches the caller's own calendar.
func (c *Client) MyBoard(ctx context.Context, date time.Time, view calendar.Granularity) (*ports.Board, error) {
	return c.board(ctx, "/v1/me/calendar", date, view)
}

func (c *Client) board(ctx context.Context, path string, date time.Time, view calendar.Granularity) (*ports.Board, error) {
	q := url.Values{}
	q.Set("date", calendar.Format(date))
	q.Set("view", string(view))
	var out ports.Board
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Navigation struct {
	Date  string `json:"date"`
	View  string `json:"view"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Navigate asks the server for the reference date one view step away.
func (c *Client) Navigate(ctx context.Context, date time.Time, view calendar.Granularity, dir calendar.Direction) (*Navigation, error) {
	q := url.Values{}
	q.Set("date", calendar.Format(date))
	q.Set("view", string(view))
	q.Set("direction", string(dir))
	var out Navigation
	if err := c.do(ctx, http.MethodGet, "/v1/calendar/navigate", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Assignments ---

type CreateAssignmentRequest struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	Date      string `json:"assignment_date"`
	Notes     string `json:"notes,omitempty"`
}

type BatchAssignmentRequest struct {
	UserIDs   []string `json:"user_ids"`
	ProjectID string   `json:"project_id"`
	Date      string   `json:"assignment_date"`
	Notes     string   `json:"notes,omitempty"`
}

type MoveRequest struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	Date      string `json:"assignment_date"`
}

type MoveResult struct {
	Created    bool               `json:"created"`
	Assignment *domain.Assignment `json:"assignment,omitempty"`
	Message    string             `json:"message"`
}

func (c *Client) CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (*domain.Assignment, error) {
	var out domain.Assignment
	if err := c.do(ctx, http.MethodPost, "/v1/assignments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBatch(ctx context.Context, req BatchAssignmentRequest) ([]domain.Assignment, error) {
	var out struct {
		Count       int                 `json:"count"`
		Assignments []domain.Assignment `json:"assignments"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/assignments/batch", nil, req, &out); err != nil {
		return nil, err
	}
	return out.Assignments, nil
}

// Move drops a user onto a project cell. Created is false when the user was
// already there.
func (c *Client) Move(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	var out MoveResult
	if err := c.do(ctx, http.MethodPost, "/v1/assignments/move", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/assignments/"+url.PathEscape(id), nil, nil, nil)
}

// do runs one request through the breaker and decodes a JSON answer into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	_, err := c.br.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, query, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

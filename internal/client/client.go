// Package client is a Go client for the availability API. Client implements
// availability.Backend so a Workspace can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/middleware"
)

// APIError is a non-2xx response from the server. It unwraps to the domain
// sentinel matching its status so callers can use errors.Is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return nil
}

// Client talks to the API on behalf of one user.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRate paces requests to rps per second. A non-positive rps disables pacing.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New returns a Client for baseURL acting as userID.
func New(baseURL, userID string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ availability.Backend = (*Client)(nil)

// ListSlots returns the caller's persisted slots in server order.
func (c *Client) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	var out api.SlotList
	if err := c.do(ctx, http.MethodGet, "/availability", nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListSlots: %w", err)
	}
	return slotsFromAPI(out.Data), nil
}

// CreateSlots submits a batch; the server stores all of it or none.
func (c *Client) CreateSlots(ctx context.Context, slots []domain.Interval) ([]domain.Slot, error) {
	body := api.CreateSlotsRequest{Slots: make([]api.SlotInput, len(slots))}
	for i, iv := range slots {
		body.Slots[i] = api.SlotInput{StartTime: iv.Start, EndTime: iv.End}
	}

	var out api.SlotList
	if err := c.do(ctx, http.MethodPost, "/availability", body, &out); err != nil {
		return nil, fmt.Errorf("client.Client.CreateSlots: %w", err)
	}
	return slotsFromAPI(out.Data), nil
}

// DeleteSlot removes one persisted slot.
func (c *Client) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/availability/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteSlot: %w", err)
	}
	return nil
}

// Dashboard returns the caller's upcoming and past meetings.
func (c *Client) Dashboard(ctx context.Context) (api.Dashboard, error) {
	var out api.Dashboard
	if err := c.do(ctx, http.MethodGet, "/meetings", nil, &out); err != nil {
		return api.Dashboard{}, fmt.Errorf("client.Client.Dashboard: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(middleware.UserIDHeader, c.userID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body api.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

func slotsFromAPI(in []api.Slot) []domain.Slot {
	out := make([]domain.Slot, len(in))
	for i, s := range in {
		out[i] = domain.Slot{
			ID:          s.Id,
			CandidateID: s.CandidateId,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Origin:      domain.OriginPersisted,
			CreatedAt:   s.CreatedAt,
		}
	}
	return out
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

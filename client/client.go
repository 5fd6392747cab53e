// Package client is a Go client for the tobacco auction HTTP API.
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
	"strconv"
	"strings"
	"time"

	"tobacco-auction/internal/biddingerrors"
	"tobacco-auction/services/bidding/helpers"
)

const defaultTimeout = 10 * time.Second

// Query narrows an auction listing. Empty fields are not sent.
type Query struct {
	Search string
	Type   string
	Sort   string
}

// APIError is a request the server answered with a non-2xx status.
type APIError struct {
	Status      int
	Code        string
	Message     string
	Detail      string
	Correctable bool
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps the server's error code back onto the domain sentinel.
func (e *APIError) Unwrap() error {
	return biddingerrors.FromCode(e.Code)
}

// Retryable reports whether the same request may succeed later.
func (e *APIError) Retryable() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// TransportError is a request that never got an HTTP answer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether err is worth retrying. Cancellation never is.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the API at baseURL authenticating with token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Status      int             `json:"status"`
	Message     string          `json:"message"`
	Data        json.RawMessage `json:"data"`
	Error       string          `json:"error"`
	ErrorCode   string          `json:"error_code"`
	Correctable bool            `json:"correctable"`
}

// CurrentUser returns the identity behind the client's token.
func (c *Client) CurrentUser(ctx context.Context) (helpers.CurrentUserResponse, error) {
	var out helpers.CurrentUserResponse
	err := c.do(ctx, http.MethodGet, "/me", nil, &out)
	return out, err
}

// ListAuctions returns the auction cards matching q in display order.
func (c *Client) ListAuctions(ctx context.Context, q Query) ([]helpers.AuctionSummary, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	path := "/auctions"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []helpers.AuctionSummary
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// GetAuction returns one auction with its bid history.
func (c *Client) GetAuction(ctx context.Context, auctionID int64) (helpers.AuctionDetail, error) {
	var out helpers.AuctionDetail
	err := c.do(ctx, http.MethodGet, "/auctions/"+strconv.FormatInt(auctionID, 10), nil, &out)
	return out, err
}

// PlaceBid submits amount, as typed by the user, on an auction.
func (c *Client) PlaceBid(ctx context.Context, auctionID int64, amount string) (helpers.PlaceBidResponse, error) {
	var out helpers.PlaceBidResponse
	body := helpers.PlaceBidRequest{Amount: helpers.AmountInput(amount)}
	err := c.do(ctx, http.MethodPost, "/auctions/"+strconv.FormatInt(auctionID, 10)+"/bids", body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}
	// a cancelled call discards whatever arrived
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:      resp.StatusCode,
			Code:        env.ErrorCode,
			Message:     env.Message,
			Detail:      env.Error,
			Correctable: env.Correctable,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

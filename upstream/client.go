// Package upstream is the typed client for the tutoring platform's REST API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to the platform API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	validate *validator.Validate
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string
	Transport    http.RoundTripper
	Logger       *zap.Logger
}

// NewClient builds a Client. Only a connection-level timeout is applied; callers
// never get automatic retries.
func NewClient(opts Options) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &bearerTransport{base: base, serviceToken: opts.ServiceToken},
		},
		logger:   logger,
		validate: validator.New(),
	}
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Conflicts = body.Conflicts
	apiErr.Message = body.Error
	if apiErr.Message == "" {
		apiErr.Message = body.Message
	}
	return apiErr
}

// checkEach validates every element of a decoded collection.
func checkEach[T any](c *Client, path string, items []T) error {
	for i := range items {
		if err := c.validate.Struct(&items[i]); err != nil {
			return fmt.Errorf("%w: %s item %d: %v", ErrInvalidResponse, path, i, err)
		}
	}
	return nil
}

// getList fetches a JSON array and validates each element. A JSON null is an
// empty list.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	if err := checkEach(c, path, items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

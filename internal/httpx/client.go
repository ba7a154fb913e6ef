// internal/httpx/client.go
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 300 // requests per minute
	DefaultUserAgent = "tokenview/1.0"

	maxBodySize = 8 << 20
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedPayload marks responses that arrived but could not be decoded
// into the expected shape.
var ErrMalformedPayload = errors.New("malformed payload")

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.Code, e.Body)
}

// Options configures the shared JSON transport.
type Options struct {
	Timeout   time.Duration
	RateLimit int // requests per minute, 0 disables limiting
	UserAgent string
}

// Client performs rate limited JSON GET requests.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *zap.Logger
}

// NewClient creates a transport with the given options
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RateLimit)), 1)
	}

	return &Client{
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   limiter,
		userAgent: opts.UserAgent,
		logger:    logger.Named("httpx"),
	}
}

// GetJSON fetches url and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	c.logger.Debug("response received",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w: %v", ErrMalformedPayload, err)
	}

	return nil
}

// wait blocks on the rate limiter. A wait that cannot finish before the
// context deadline is reported as a deadline error.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("rate limit: %w", ctxErr)
		}
		return fmt.Errorf("rate limit: %v: %w", err, context.DeadlineExceeded)
	}
	return nil
}

// truncate keeps at most n bytes of s without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

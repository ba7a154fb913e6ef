// internal/dexscreener/client.go
package dexscreener

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rovshanmuradov/tokenview/internal/httpx"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultBaseURL = "https://api.dexscreener.com/latest/dex"

// Client talks to the DexScreener public API
type Client struct {
	transport *httpx.Client
	baseURL   string
	logger    *zap.Logger
}

// NewClient creates a new DexScreener client
func NewClient(baseURL string, transport *httpx.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger.Named("dexscreener"),
	}
}

// TokenPairs returns the pairs trading the token at address
func (c *Client) TokenPairs(ctx context.Context, address string) ([]Pair, error) {
	u := fmt.Sprintf("%s/tokens/%s", c.baseURL, url.PathEscape(address))

	pairs, err := c.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to get token pairs: %w", err)
	}
	return pairs, nil
}

// Search returns the pairs matching a free-text query (ticker, name, address)
func (c *Client) Search(ctx context.Context, query string) ([]Pair, error) {
	u := fmt.Sprintf("%s/search/?q=%s", c.baseURL, url.QueryEscape(query))

	pairs, err := c.fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to search pairs: %w", err)
	}
	return pairs, nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]Pair, error) {
	var envelope Envelope
	if err := c.transport.GetJSON(ctx, u, &envelope); err != nil {
		return nil, err
	}

	raw, ok := envelope[pairsKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing pairs key", httpx.ErrMalformedPayload)
	}

	pairs, dropped, err := decodePairs(raw)
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		c.logger.Warn("dropped pairs missing required keys",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(pairs)))
	}

	c.logger.Debug("pairs fetched",
		zap.String("url", u),
		zap.Int("pairs", len(pairs)))

	return pairs, nil
}

// decodePairs validates the raw pairs array. A set where no pair carries the
// required keys is malformed, null and [] are simply empty.
func decodePairs(raw jsoniter.RawMessage) ([]Pair, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, 0, nil
	}

	var candidates []Pair
	if err := json.Unmarshal(trimmed, &candidates); err != nil {
		return nil, 0, fmt.Errorf("%w: decode pairs: %v", httpx.ErrMalformedPayload, err)
	}

	valid := make([]Pair, 0, len(candidates))
	var lastErr error
	for _, pair := range candidates {
		if err := pair.Validate(); err != nil {
			lastErr = err
			continue
		}
		valid = append(valid, pair)
	}

	if len(candidates) > 0 && len(valid) == 0 {
		return nil, len(candidates), fmt.Errorf("%w: %v", httpx.ErrMalformedPayload, lastErr)
	}

	return valid, len(candidates) - len(valid), nil
}

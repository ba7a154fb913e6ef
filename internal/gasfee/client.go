// internal/gasfee/client.go
package gasfee

import (
	"context"
	"errors"
	"fmt"

	"github.com/rovshanmuradov/tokenview/internal/httpx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultURL = "https://iai-donation-be.onrender.com/detector/get-average-gas-fee"

// ErrUnsuccessful is returned when the endpoint answers with success=false.
var ErrUnsuccessful = errors.New("gas endpoint reported failure")

type response struct {
	Success *bool        `json:"success"`
	Data    *[]rawSample `json:"data"`
}

// avgGasPrice arrives either as a JSON string or a number, decimal accepts both.
type rawSample struct {
	BlockNumber *decimal.Decimal `json:"blockNumber"`
	AvgGasPrice *decimal.Decimal `json:"avgGasPrice"`
}

// Sample is one point of the average gas price series, price in wei.
type Sample struct {
	BlockNumber uint64
	AvgGasPrice decimal.Decimal
}

// Client fetches the average gas fee series
type Client struct {
	transport *httpx.Client
	url       string
	logger    *zap.Logger
}

// NewClient creates a new gas fee client
func NewClient(url string, transport *httpx.Client, logger *zap.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		transport: transport,
		url:       url,
		logger:    logger.Named("gasfee"),
	}
}

// AverageGasFee returns the samples in payload order
func (c *Client) AverageGasFee(ctx context.Context) ([]Sample, error) {
	var resp response
	if err := c.transport.GetJSON(ctx, c.url, &resp); err != nil {
		return nil, fmt.Errorf("failed to get average gas fee: %w", err)
	}

	samples, err := resp.samples()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gas samples fetched", zap.Int("samples", len(samples)))
	return samples, nil
}

func (r response) samples() ([]Sample, error) {
	if r.Success == nil {
		return nil, fmt.Errorf("%w: missing success key", httpx.ErrMalformedPayload)
	}
	if !*r.Success {
		return nil, ErrUnsuccessful
	}
	if r.Data == nil {
		return nil, fmt.Errorf("%w: missing data key", httpx.ErrMalformedPayload)
	}

	samples := make([]Sample, 0, len(*r.Data))
	for i, raw := range *r.Data {
		if raw.BlockNumber == nil || raw.AvgGasPrice == nil {
			return nil, fmt.Errorf("%w: sample %d missing blockNumber or avgGasPrice", httpx.ErrMalformedPayload, i)
		}
		block := raw.BlockNumber.BigInt()
		if !raw.BlockNumber.Equal(raw.BlockNumber.Truncate(0)) || !block.IsUint64() {
			return nil, fmt.Errorf("%w: sample %d has invalid block number %s", httpx.ErrMalformedPayload, i, raw.BlockNumber)
		}
		samples = append(samples, Sample{
			BlockNumber: block.Uint64(),
			AvgGasPrice: *raw.AvgGasPrice,
		})
	}

	return samples, nil
}

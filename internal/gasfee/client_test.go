package gasfee

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rovshanmuradov/tokenview/internal/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fetch(t *testing.T, body string) ([]Sample, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	logger := zap.NewNop()
	client := NewClient(srv.URL, httpx.NewClient(httpx.Options{}, logger), logger)
	return client.AverageGasFee(context.Background())
}

func TestAverageGasFeeAcceptsStringAndNumber(t *testing.T) {
	samples, err := fetch(t, `{"success":true,"data":[
		{"blockNumber":100,"avgGasPrice":"2000000000"},
		{"blockNumber":"101","avgGasPrice":3500000000}
	]}`)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, uint64(100), samples[0].BlockNumber)
	assert.Equal(t, "2000000000", samples[0].AvgGasPrice.String())
	assert.Equal(t, uint64(101), samples[1].BlockNumber)
	assert.Equal(t, "3500000000", samples[1].AvgGasPrice.String())
}

func TestAverageGasFeeLargeBlockNumber(t *testing.T) {
	samples, err := fetch(t, `{"success":true,"data":[{"blockNumber":"18446744073709551615","avgGasPrice":"1"}]}`)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, uint64(18446744073709551615), samples[0].BlockNumber)
}

func TestAverageGasFeeEmptyData(t *testing.T) {
	samples, err := fetch(t, `{"success":true,"data":[]}`)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestAverageGasFeeErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		malformed bool
	}{
		{name: "missing success", body: `{"data":[]}`, malformed: true},
		{name: "missing data", body: `{"success":true}`, malformed: true},
		{name: "null data", body: `{"success":true,"data":null}`, malformed: true},
		{name: "sample without price", body: `{"success":true,"data":[{"blockNumber":1}]}`, malformed: true},
		{name: "fractional block", body: `{"success":true,"data":[{"blockNumber":1.5,"avgGasPrice":"1"}]}`, malformed: true},
		{name: "negative block", body: `{"success":true,"data":[{"blockNumber":-1,"avgGasPrice":"1"}]}`, malformed: true},
		{name: "block overflows uint64", body: `{"success":true,"data":[{"blockNumber":"18446744073709551616","avgGasPrice":"1"}]}`, malformed: true},
		{name: "unsuccessful", body: `{"success":false,"data":[]}`, malformed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fetch(t, tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.malformed, errors.Is(err, httpx.ErrMalformedPayload))
			if !tt.malformed {
				assert.True(t, errors.Is(err, ErrUnsuccessful))
			}
		})
	}
}

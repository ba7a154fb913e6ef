package tokenview

import (
	"math"
	"testing"

	"github.com/rovshanmuradov/tokenview/internal/dexscreener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price *string
		want  string
	}{
		{name: "pads digits", price: ptr("1.5"), want: "1.500000"},
		{name: "rounds", price: ptr("0.00000123456789"), want: "0.000001"},
		{name: "large", price: ptr("65000"), want: "65000.000000"},
		{name: "missing", price: nil, want: NaNText},
		{name: "garbage", price: ptr("n/a"), want: NaNText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestFormatGrouped(t *testing.T) {
	assert.Equal(t, "1,234,567.891", FormatGrouped(1234567.891))
	assert.Equal(t, "1,000", FormatGrouped(1000))
	assert.Equal(t, "12.5", FormatGrouped(12.5))
	assert.Equal(t, NaNText, FormatGrouped(math.NaN()))
	assert.Equal(t, NaNText, FormatGrouped(math.Inf(1)))
	assert.Equal(t, NaNText, FormatGroupedPtr(nil))
}

func TestFormatPercentAndGwei(t *testing.T) {
	assert.Equal(t, "1.23%", FormatPercent(1.234))
	assert.Equal(t, "-0.50%", FormatPercent(-0.5))
	assert.Equal(t, NaNText, FormatPercent(math.NaN()))

	assert.Equal(t, "2.00 Gwei", FormatGwei(2))
	assert.Equal(t, NaNText, FormatGwei(math.NaN()))
}

func TestNewCard(t *testing.T) {
	pair := dexscreener.Pair{
		ChainID:     "ethereum",
		DexID:       "uniswap",
		BaseToken:   dexscreener.Token{Name: "Pepe", Symbol: "PEPE"},
		PriceUSD:    ptr("0.0000123"),
		Volume:      &dexscreener.Windows{H24: ptr(1500000.0)},
		FDV:         ptr(5e9),
		PriceChange: &dexscreener.Windows{M5: ptr(1.0)},
	}

	card := NewCard(pair)
	assert.Equal(t, "Pepe (PEPE)", card.Title)
	assert.Equal(t, "ethereum", card.Chain)
	require.Len(t, card.Fields, 5)
	assert.Equal(t, Field{Label: "Price", Value: "$0.000012"}, card.Fields[0])
	assert.Equal(t, Field{Label: "24h Volume", Value: "$1,500,000"}, card.Fields[1])
	assert.Equal(t, Field{Label: "Liquidity", Value: "$NaN"}, card.Fields[2])
	assert.Equal(t, Field{Label: "Fully Diluted Valuation", Value: "$5,000,000,000"}, card.Fields[3])

	require.Len(t, card.Changes, 4)
	assert.Equal(t, Field{Label: "5m Change", Value: "1.00%"}, card.Changes[0])
	assert.Equal(t, Field{Label: "6h Change", Value: NaNText}, card.Changes[2])
}

func TestTooltip(t *testing.T) {
	tests := []struct {
		name string
		kind SeriesKind
		p    Point
		want TooltipText
	}{
		{
			name: "positive change",
			kind: SeriesPriceChange,
			p:    Point{Label: "1h", Value: 1.234},
			want: TooltipText{Title: "1h", Body: "Price-Change: 1.23%", Tone: TonePositive},
		},
		{
			name: "zero is positive",
			kind: SeriesPriceChange,
			p:    Point{Label: "5m", Value: 0},
			want: TooltipText{Title: "5m", Body: "Price-Change: 0.00%", Tone: TonePositive},
		},
		{
			name: "negative change",
			kind: SeriesPriceChange,
			p:    Point{Label: "24h", Value: -3},
			want: TooltipText{Title: "24h", Body: "Price-Change: -3.00%", Tone: ToneNegative},
		},
		{
			name: "missing change",
			kind: SeriesPriceChange,
			p:    Point{Label: "6h", Value: math.NaN()},
			want: TooltipText{Title: "6h", Body: "Price-Change: NaN", Tone: ToneNeutral},
		},
		{
			name: "gas is never toned",
			kind: SeriesGasPrice,
			p:    Point{Label: "100", Value: -2},
			want: TooltipText{Title: "Block 100", Body: "Avg Gas: -2.00 Gwei", Tone: ToneNeutral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tooltip(tt.kind, tt.p))
		})
	}
}

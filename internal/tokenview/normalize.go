package tokenview

import (
	"math"
	"strconv"

	"github.com/rovshanmuradov/tokenview/internal/dexscreener"
	"github.com/rovshanmuradov/tokenview/internal/gasfee"
	"github.com/shopspring/decimal"
)

// SeriesKind tells the renderer how to label and color a series.
type SeriesKind int

const (
	SeriesPriceChange SeriesKind = iota
	SeriesGasPrice
)

func (k SeriesKind) String() string {
	if k == SeriesGasPrice {
		return "gas_price"
	}
	return "price_change"
}

// Point is one chart sample. Value is NaN when the source field is missing.
type Point struct {
	Label string
	Value float64
}

// Series is an ordered list of chart points
type Series struct {
	Kind   SeriesKind
	Points []Point
}

// Len returns the number of points
func (s Series) Len() int {
	return len(s.Points)
}

// Values returns the point values in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Window labels of the price-change series, in chart order.
const (
	Window5m  = "5m"
	Window1h  = "1h"
	Window6h  = "6h"
	Window24h = "24h"
)

var weiPerGwei = decimal.New(1, 9)

// PriceChangeSeries always yields four points: 5m, 1h, 6h, 24h.
func PriceChangeSeries(pair dexscreener.Pair) Series {
	var w dexscreener.Windows
	if pair.PriceChange != nil {
		w = *pair.PriceChange
	}
	return Series{
		Kind: SeriesPriceChange,
		Points: []Point{
			{Label: Window5m, Value: valueOrNaN(w.M5)},
			{Label: Window1h, Value: valueOrNaN(w.H1)},
			{Label: Window6h, Value: valueOrNaN(w.H6)},
			{Label: Window24h, Value: valueOrNaN(w.H24)},
		},
	}
}

// GasSeries keeps payload order and labels each point with its block number.
func GasSeries(samples []gasfee.Sample) Series {
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		points = append(points, Point{
			Label: strconv.FormatUint(s.BlockNumber, 10),
			Value: WeiToGwei(s.AvgGasPrice),
		})
	}
	return Series{Kind: SeriesGasPrice, Points: points}
}

// WeiToGwei scales a wei amount by 1e9.
func WeiToGwei(wei decimal.Decimal) float64 {
	return wei.Div(weiPerGwei).InexactFloat64()
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

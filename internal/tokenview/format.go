package tokenview

import (
	"fmt"
	"math"
	"strings"

	"github.com/rovshanmuradov/tokenview/internal/dexscreener"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NaNText is what every formatter prints for a missing or non-numeric value.
const NaNText = "NaN"

const (
	priceDigits    = 6
	groupedDigits  = 3
	percentDigits  = 2
	gasPriceDigits = 2
)

var displayTag = language.AmericanEnglish

func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatPrice renders a decimal price string with six fractional digits.
func FormatPrice(price *string) string {
	if price == nil {
		return NaNText
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*price))
	if err != nil {
		return NaNText
	}
	return d.StringFixed(priceDigits)
}

// FormatGrouped renders v with en-US digit grouping.
func FormatGrouped(v float64) string {
	if !defined(v) {
		return NaNText
	}
	p := message.NewPrinter(displayTag)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(groupedDigits)))
}

// FormatGroupedPtr is FormatGrouped for optional payload fields.
func FormatGroupedPtr(v *float64) string {
	if v == nil {
		return NaNText
	}
	return FormatGrouped(*v)
}

// FormatFixed renders v with a fixed number of fractional digits
func FormatFixed(v float64, digits int) string {
	if !defined(v) {
		return NaNText
	}
	return fmt.Sprintf("%.*f", digits, v)
}

// FormatPercent renders a price change such as "1.23%".
func FormatPercent(v float64) string {
	if !defined(v) {
		return NaNText
	}
	return FormatFixed(v, percentDigits) + "%"
}

// FormatGwei renders a gas price such as "2.00 Gwei".
func FormatGwei(v float64) string {
	if !defined(v) {
		return NaNText
	}
	return FormatFixed(v, gasPriceDigits) + " Gwei"
}

// Field is one labelled line of the token card.
type Field struct {
	Label string
	Value string
}

// Card is the display form of a selected pair.
type Card struct {
	Title   string
	Chain   string
	DEX     string
	URL     string
	Fields  []Field
	Changes []Field
}

// NewCard formats every figure of pair for display.
func NewCard(pair dexscreener.Pair) Card {
	series := PriceChangeSeries(pair)
	changes := make([]Field, 0, series.Len())
	for _, p := range series.Points {
		changes = append(changes, Field{Label: p.Label + " Change", Value: FormatPercent(p.Value)})
	}

	title := pair.BaseToken.Symbol
	if pair.BaseToken.Name != "" {
		title = fmt.Sprintf("%s (%s)", pair.BaseToken.Name, pair.BaseToken.Symbol)
	}

	return Card{
		Title: title,
		Chain: pair.ChainID,
		DEX:   pair.DexID,
		URL:   pair.URL,
		Fields: []Field{
			{Label: "Price", Value: "$" + FormatPrice(pair.PriceUSD)},
			{Label: "24h Volume", Value: "$" + FormatGroupedPtr(pair.Volume24h())},
			{Label: "Liquidity", Value: "$" + FormatGroupedPtr(pair.LiquidityUSD())},
			{Label: "Fully Diluted Valuation", Value: "$" + FormatGroupedPtr(pair.FDV)},
			{Label: "Market Cap", Value: "$" + FormatGroupedPtr(pair.MarketCap)},
		},
		Changes: changes,
	}
}

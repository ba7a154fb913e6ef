package dexscreener

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Envelope is the top-level object shared by the tokens and search
// endpoints. Values stay raw so an absent "pairs" key can be told apart from
// "pairs": null, which decodes to a nil RawMessage.
type Envelope map[string]jsoniter.RawMessage

const pairsKey = "pairs"

// Pair is one trading pair. Required keys are plain values, everything the
// API may omit is a pointer.
type Pair struct {
	ChainID       string     `json:"chainId"`
	DexID         string     `json:"dexId"`
	URL           string     `json:"url"`
	PairAddress   string     `json:"pairAddress"`
	BaseToken     Token      `json:"baseToken"`
	QuoteToken    Token      `json:"quoteToken"`
	PriceNative   *string    `json:"priceNative"`
	PriceUSD      *string    `json:"priceUsd"`
	Volume        *Windows   `json:"volume"`
	PriceChange   *Windows   `json:"priceChange"`
	Liquidity     *Liquidity `json:"liquidity"`
	FDV           *float64   `json:"fdv"`
	MarketCap     *float64   `json:"marketCap"`
	PairCreatedAt int64      `json:"pairCreatedAt"`
}

// Token identifies one side of a pair
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Windows holds a figure broken down by time window (volume, price change).
type Windows struct {
	M5  *float64 `json:"m5"`
	H1  *float64 `json:"h1"`
	H6  *float64 `json:"h6"`
	H24 *float64 `json:"h24"`
}

// Liquidity of the pool in USD and in each token
type Liquidity struct {
	USD   *float64 `json:"usd"`
	Base  *float64 `json:"base"`
	Quote *float64 `json:"quote"`
}

// Validate reports the required keys missing from the pair.
func (p Pair) Validate() error {
	var missing []string
	if p.ChainID == "" {
		missing = append(missing, "chainId")
	}
	if p.PairAddress == "" {
		missing = append(missing, "pairAddress")
	}
	if p.BaseToken.Address == "" {
		missing = append(missing, "baseToken.address")
	}
	if p.BaseToken.Symbol == "" {
		missing = append(missing, "baseToken.symbol")
	}
	if len(missing) > 0 {
		return fmt.Errorf("pair missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Volume24h returns the 24h volume or nil
func (p Pair) Volume24h() *float64 {
	if p.Volume == nil {
		return nil
	}
	return p.Volume.H24
}

// LiquidityUSD returns the USD liquidity or nil
func (p Pair) LiquidityUSD() *float64 {
	if p.Liquidity == nil {
		return nil
	}
	return p.Liquidity.USD
}

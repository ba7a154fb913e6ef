package tokenview

import (
	"fmt"
	"strings"
)

// Network is the chain filter applied by the selection rule.
type Network string

const (
	NetworkUnset    Network = ""
	NetworkSolana   Network = "solana"
	NetworkEthereum Network = "ethereum"
	NetworkBSC      Network = "bsc"
	NetworkPolygon  Network = "polygon"
)

// Networks lists the selectable filters, unset first.
var Networks = []Network{NetworkUnset, NetworkSolana, NetworkEthereum, NetworkBSC, NetworkPolygon}

// ParseNetwork maps user input onto the closed network set.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "any", "all":
		return NetworkUnset, nil
	case "solana":
		return NetworkSolana, nil
	case "ethereum":
		return NetworkEthereum, nil
	case "bsc":
		return NetworkBSC, nil
	case "polygon":
		return NetworkPolygon, nil
	default:
		return NetworkUnset, fmt.Errorf("unknown network %q", s)
	}
}

func (n Network) String() string {
	if n == NetworkUnset {
		return "unset"
	}
	return string(n)
}

// Query is one immutable search submission.
type Query struct {
	Text    string
	Network Network
}

// NewQuery trims the text and pairs it with a network filter
func NewQuery(text string, network Network) Query {
	return Query{Text: strings.TrimSpace(text), Network: network}
}

// Strategy is the lookup used for a query.
type Strategy int

const (
	StrategyKeywordSearch Strategy = iota
	StrategyAddressLookup
)

func (s Strategy) String() string {
	switch s {
	case StrategyAddressLookup:
		return "address_lookup"
	case StrategyKeywordSearch:
		return "keyword_search"
	default:
		return "unknown"
	}
}

// AddressPrefix marks hexadecimal contract addresses.
const AddressPrefix = "0x"

// Classify picks the lookup strategy from the query text alone.
func Classify(text string) Strategy {
	if strings.HasPrefix(text, AddressPrefix) {
		return StrategyAddressLookup
	}
	return StrategyKeywordSearch
}

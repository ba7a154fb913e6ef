package tokenview

import "github.com/rovshanmuradov/tokenview/internal/dexscreener"

// SelectPair returns the first pair in API order whose chain matches network.
// With no network filter the first pair wins.
func SelectPair(pairs []dexscreener.Pair, network Network) (*dexscreener.Pair, bool) {
	for i := range pairs {
		if network == NetworkUnset || pairs[i].ChainID == string(network) {
			selected := pairs[i]
			return &selected, true
		}
	}
	return nil, false
}

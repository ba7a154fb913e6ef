package tokenview

import "github.com/rovshanmuradov/tokenview/internal/dexscreener"

// Phase is the lifecycle position of the view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePopulated
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePopulated:
		return "populated"
	case PhaseEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Reason explains an Empty view.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmptyResult
	ReasonNetworkFailure
	ReasonMalformedPayload
	ReasonTimeout
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEmptyResult:
		return "empty_result"
	case ReasonNetworkFailure:
		return "network_failure"
	case ReasonMalformedPayload:
		return "malformed_payload"
	case ReasonTimeout:
		return "timeout"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Retryable reports whether the user may reasonably try the same fetch again.
func (r Reason) Retryable() bool {
	return r == ReasonNetworkFailure || r == ReasonMalformedPayload || r == ReasonTimeout
}

// ViewState is the single source of truth for what the view renders.
// Pair is set only for a populated search, Series for any populated view.
type ViewState struct {
	Phase  Phase
	Pair   *dexscreener.Pair
	Series Series
	Reason Reason
	Err    error
	Seq    uint64
}

// Loading reports whether a fetch is outstanding
func (s ViewState) Loading() bool {
	return s.Phase == PhaseLoading
}

// HasData reports whether there is something to render besides a placeholder
func (s ViewState) HasData() bool {
	return s.Phase == PhasePopulated
}

func populated(pair *dexscreener.Pair, series Series) ViewState {
	return ViewState{Phase: PhasePopulated, Pair: pair, Series: series}
}

func empty(reason Reason, err error) ViewState {
	return ViewState{Phase: PhaseEmpty, Reason: reason, Err: err}
}

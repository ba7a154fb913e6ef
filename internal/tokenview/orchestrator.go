// internal/tokenview/orchestrator.go
package tokenview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rovshanmuradov/tokenview/internal/dexscreener"
	"github.com/rovshanmuradov/tokenview/internal/gasfee"
	"github.com/rovshanmuradov/tokenview/internal/httpx"
	"github.com/rovshanmuradov/tokenview/internal/metrics"
	"go.uber.org/zap"
)

// PairSource looks up DexScreener trading pairs.
type PairSource interface {
	TokenPairs(ctx context.Context, address string) ([]dexscreener.Pair, error)
	Search(ctx context.Context, query string) ([]dexscreener.Pair, error)
}

// GasSource fetches the average gas price series.
type GasSource interface {
	AverageGasFee(ctx context.Context) ([]gasfee.Sample, error)
}

// Policy decides what happens to a request when a newer one is issued.
type Policy int

const (
	// CancelSuperseded aborts the previous request's context.
	CancelSuperseded Policy = iota
	// CancelNone lets superseded requests finish; their results are still discarded.
	CancelNone
)

var errNoSource = errors.New("no data source configured for this mode")

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// Options configures an Orchestrator
type Options struct {
	Timeout time.Duration
	Policy  Policy
}

// Mode selects which fetch a trigger performs.
type Mode int

const (
	ModeSearch Mode = iota
	ModePolling
)

func (m Mode) String() string {
	if m == ModePolling {
		return "polling"
	}
	return "search"
}

// Trigger is one fetch request: a submitted query or a gas poll.
type Trigger struct {
	Mode  Mode
	Query Query
}

// SearchTrigger wraps a submitted query
func SearchTrigger(q Query) Trigger {
	return Trigger{Mode: ModeSearch, Query: q}
}

// PollTrigger requests the gas series
func PollTrigger() Trigger {
	return Trigger{Mode: ModePolling}
}

// Outcome is the reconciled result of one request, not yet applied.
type Outcome struct {
	RequestID string
	Trigger   Trigger
	State     ViewState
	Duration  time.Duration
}

// Seq returns the sequence number the outcome was issued under
func (o Outcome) Seq() uint64 {
	return o.State.Seq
}

// Orchestrator turns triggers into exactly one network call each and owns the
// resulting ViewState. Only the most recently issued request may update it.
type Orchestrator struct {
	pairs   PairSource
	gas     GasSource
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  ViewState
}

// NewOrchestrator creates an orchestrator in the Idle phase. collector may be nil.
func NewOrchestrator(pairs PairSource, gas GasSource, opts Options, logger *zap.Logger, collector *metrics.Collector) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		pairs:   pairs,
		gas:     gas,
		opts:    opts,
		logger:  logger.Named("orchestrator"),
		metrics: collector,
		state:   ViewState{Phase: PhaseIdle},
	}
}

// State returns a copy of the current view state
func (o *Orchestrator) State() ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Request is an issued fetch. Run must be called exactly once.
type Request struct {
	ID      string
	Seq     uint64
	Trigger Trigger

	o       *Orchestrator
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time
	logger  *zap.Logger
}

// Begin moves the view to Loading, drops any prior result and issues a new
// sequence number. Under CancelSuperseded the previous request is aborted.
func (o *Orchestrator) Begin(parent context.Context, t Trigger) *Request {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil && o.opts.Policy == CancelSuperseded {
		o.cancel()
	}

	o.seq++
	ctx, cancel := context.WithTimeout(parent, o.opts.Timeout)
	o.cancel = cancel
	o.state = ViewState{Phase: PhaseLoading, Seq: o.seq}

	req := &Request{
		ID:      uuid.NewString(),
		Seq:     o.seq,
		Trigger: t,
		o:       o,
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
	}
	req.logger = o.logger.With(
		zap.String("request_id", req.ID),
		zap.Uint64("seq", req.Seq),
		zap.Stringer("mode", t.Mode),
	)
	o.metrics.FetchStarted()
	req.logger.Debug("fetch started")
	return req
}

// Run performs the request's single network call and reconciles the response.
func (r *Request) Run() Outcome {
	defer r.cancel()

	state := r.o.fetch(r.ctx, r.Trigger, r.logger)
	state.Seq = r.Seq
	duration := time.Since(r.started)

	r.o.metrics.ObserveFetch(r.Trigger.Mode.String(), state.Reason.String(), duration)

	fields := []zap.Field{
		zap.Stringer("phase", state.Phase),
		zap.Stringer("reason", state.Reason),
		zap.Duration("duration", duration),
	}
	if state.Err != nil {
		r.logger.Warn("fetch failed", append(fields, zap.Error(state.Err))...)
	} else {
		r.logger.Debug("fetch finished", fields...)
	}

	return Outcome{
		RequestID: r.ID,
		Trigger:   r.Trigger,
		State:     state,
		Duration:  duration,
	}
}

// Apply commits out if it belongs to the latest request and reports whether it did.
func (o *Orchestrator) Apply(out Outcome) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if out.Seq() != o.seq {
		o.metrics.ObserveStale(out.Trigger.Mode.String())
		o.logger.Debug("discarding stale response",
			zap.String("request_id", out.RequestID),
			zap.Uint64("seq", out.Seq()),
			zap.Uint64("latest", o.seq),
			zap.Stringer("reason", out.State.Reason))
		return false
	}

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.state = out.State
	return true
}

// Submit runs a trigger to completion and returns the resulting view state.
func (o *Orchestrator) Submit(ctx context.Context, t Trigger) ViewState {
	req := o.Begin(ctx, t)
	o.Apply(req.Run())
	return o.State()
}

func (o *Orchestrator) fetch(ctx context.Context, t Trigger, logger *zap.Logger) ViewState {
	if t.Mode == ModePolling {
		if o.gas == nil {
			return o.failed(ctx, errNoSource)
		}
		samples, err := o.gas.AverageGasFee(ctx)
		if err != nil {
			return o.failed(ctx, err)
		}
		if len(samples) == 0 {
			return empty(ReasonEmptyResult, nil)
		}
		return populated(nil, GasSeries(samples))
	}

	if o.pairs == nil {
		return o.failed(ctx, errNoSource)
	}
	pairs, err := o.lookup(ctx, t.Query, logger)
	if err != nil {
		return o.failed(ctx, err)
	}
	pair, ok := SelectPair(pairs, t.Query.Network)
	if !ok {
		logger.Debug("no pair matched",
			zap.Int("candidates", len(pairs)),
			zap.Stringer("network", t.Query.Network))
		return empty(ReasonEmptyResult, nil)
	}
	return populated(pair, PriceChangeSeries(*pair))
}

func (o *Orchestrator) lookup(ctx context.Context, q Query, logger *zap.Logger) ([]dexscreener.Pair, error) {
	strategy := Classify(q.Text)
	logger.Debug("looking up pairs",
		zap.Stringer("strategy", strategy),
		zap.Stringer("network", q.Network))

	if strategy == StrategyAddressLookup {
		if common.IsHexAddress(q.Text) {
			logger.Debug("query is an EVM address", zap.String("checksum", common.HexToAddress(q.Text).Hex()))
		}
		return o.pairs.TokenPairs(ctx, q.Text)
	}
	return o.pairs.Search(ctx, q.Text)
}

func (o *Orchestrator) failed(ctx context.Context, err error) ViewState {
	return empty(classify(ctx, err), err)
}

type timeoutError interface {
	Timeout() bool
}

// classify maps a fetch error onto a Reason. The request context wins over
// the error chain so a deadline is never reported as a plain network failure.
func classify(ctx context.Context, err error) Reason {
	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(ctxErr, context.Canceled):
		return ReasonCanceled
	}

	var te timeoutError
	switch {
	case errors.Is(err, httpx.ErrMalformedPayload):
		return ReasonMalformedPayload
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &te) && te.Timeout():
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	default:
		return ReasonNetworkFailure
	}
}

// Describe renders a one-line explanation of an Empty state.
func Describe(s ViewState) string {
	if s.Phase != PhaseEmpty {
		return s.Phase.String()
	}
	if s.Err == nil {
		return s.Reason.String()
	}
	return fmt.Sprintf("%s: %v", s.Reason, s.Err)
}

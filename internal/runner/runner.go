package runner

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/risk"
	"github.com/rxtech-lab/argo-signal/internal/strategy"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// Runner evaluates bars for a single symbol. It owns the indicator stream,
// the cross tracker and the position, so it must not be shared between
// goroutines.
type Runner struct {
	pipeline *Pipeline
	symbol   string
	stream   *indicator.Stream
	tracker  *strategy.Tracker
	position *types.Position
	capital  float64
	realized float64
	// exited is the exposure closed by the last forced exit, kept until
	// the host reports the closing fill.
	exited *types.Position
	logger *zap.Logger
}

// Symbol returns the symbol this runner evaluates.
func (r *Runner) Symbol() string {
	return r.symbol
}

// Position returns a copy of the current position state.
func (r *Runner) Position() types.Position {
	return *r.position
}

// RealizedPnL returns the PnL realized by closing fills so far.
func (r *Runner) RealizedPnL() float64 {
	return r.realized
}

// Process evaluates the next bar and returns its signal. Bars must arrive in
// ascending time order; a rejected bar leaves the runner unchanged.
func (r *Runner) Process(bar types.Bar) (types.Signal, error) {
	start := time.Now()
	metrics := r.pipeline.metrics

	if bar.Symbol != "" && bar.Symbol != r.symbol {
		metrics.RejectedBars.WithLabelValues(r.symbol).Inc()

		return types.Signal{}, errors.Newf(errors.ErrCodeInvalidParameter, "bar for %s sent to runner for %s", bar.Symbol, r.symbol)
	}

	bar.Symbol = r.symbol

	snapshot, err := r.stream.Update(bar)
	if err != nil {
		metrics.RejectedBars.WithLabelValues(r.symbol).Inc()
		r.logger.Warn("Rejected bar", zap.Time("time", bar.Time), zap.Error(err))

		return types.Signal{}, err
	}

	kind, reason := r.tracker.Update(snapshot)
	before := *r.position

	signal, err := r.pipeline.policy.Evaluate(r.position, bar, kind, reason, r.capital)
	if err != nil {
		r.logger.Error("Failed to evaluate bar", zap.Time("time", bar.Time), zap.Error(err))

		return types.Signal{}, err
	}

	metrics.BarsTotal.WithLabelValues(r.symbol).Inc()
	metrics.SignalsTotal.WithLabelValues(r.symbol, string(signal.Action)).Inc()
	metrics.EvaluateDuration.Observe(time.Since(start).Seconds())

	if before.IsOpen() && !r.position.IsOpen() {
		r.exited = &before
		metrics.ForcedExitsTotal.WithLabelValues(r.symbol, signal.Reason).Inc()
	}

	if !signal.IsHold() {
		r.logger.Info("Signal",
			zap.Time("time", signal.Time),
			zap.String("action", string(signal.Action)),
			zap.Float64("price", signal.Price),
			zap.Int("size", signal.Size),
			zap.String("reason", signal.Reason),
		)
	}

	return signal, nil
}

// ApplyFill forwards an execution reported by the host to the risk manager
// and returns the PnL it realized.
func (r *Runner) ApplyFill(fill types.Fill) (float64, error) {
	if fill.Symbol != "" && fill.Symbol != r.symbol {
		return 0, errors.Newf(errors.ErrCodeInvalidFill, "fill for %s sent to runner for %s", fill.Symbol, r.symbol)
	}

	if pnl, ok := r.settleExit(fill); ok {
		r.record(fill, pnl)

		return pnl, nil
	}

	r.exited = nil

	pnl, err := r.pipeline.risk.ApplyFill(r.position, fill)
	if err != nil {
		r.logger.Warn("Rejected fill", zap.Any("fill", fill), zap.Error(err))

		return 0, err
	}

	r.record(fill, pnl)

	return pnl, nil
}

// settleExit books a reduce-only fill against the exposure of the last
// forced exit, since the position itself is already flat.
func (r *Runner) settleExit(fill types.Fill) (float64, bool) {
	if r.exited == nil || !fill.ReduceOnly || r.position.IsOpen() {
		return 0, false
	}

	if err := fill.Validate(); err != nil {
		return 0, false
	}

	closing := types.FillSideSell
	if r.exited.Side == types.SideShort {
		closing = types.FillSideBuy
	}

	if fill.Side != closing {
		return 0, false
	}

	qty := min(fill.Size, r.exited.Size)
	pnl := risk.RealizedPnL(r.exited.Side, r.exited.EntryPrice, fill.Price, qty)

	r.exited.Size -= qty
	if r.exited.Size == 0 {
		r.exited = nil
	}

	return pnl, true
}

func (r *Runner) record(fill types.Fill, pnl float64) {
	r.realized += pnl

	metrics := r.pipeline.metrics
	metrics.FillsTotal.WithLabelValues(r.symbol, string(fill.Side)).Inc()
	metrics.RealizedPnL.WithLabelValues(r.symbol).Set(r.realized)

	r.logger.Debug("Fill applied",
		zap.String("side", string(fill.Side)),
		zap.Int("size", fill.Size),
		zap.Float64("price", fill.Price),
		zap.Float64("pnl", pnl),
		zap.String("position", string(r.position.Side)),
	)
}

// Package runner wires the indicator engine, a strategy, the risk manager
// and the signal policy into per-symbol evaluation contexts.
package runner

import (
	"context"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/policy"
	"github.com/rxtech-lab/argo-signal/internal/risk"
	"github.com/rxtech-lab/argo-signal/internal/strategy"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=./mock_strategy_test.go -package=runner github.com/rxtech-lab/argo-signal/internal/strategy Strategy

// Pipeline holds everything shared between symbols. It is immutable after
// construction.
type Pipeline struct {
	config   config.Config
	engine   *indicator.Engine
	strategy strategy.Strategy
	risk     *risk.Manager
	policy   *policy.Policy
	logger   *logger.Logger
	metrics  *Metrics
}

// NewPipeline builds the shared components. The engine computes the
// configured indicators plus whatever the strategy reads.
func NewPipeline(cfg config.Config, strat strategy.Strategy, log *logger.Logger, metrics *Metrics) (*Pipeline, error) {
	if strat == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "strategy is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	indicators, err := indicator.FromConfig(cfg.Indicators)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), "failed to build indicators", err)
	}

	engine, err := indicator.NewEngine(indicator.Dedupe(append(indicators, strat.Indicators()...))...)
	if err != nil {
		return nil, err
	}

	manager, err := risk.NewManager(cfg.Risk)
	if err != nil {
		return nil, err
	}

	pol, err := policy.NewPolicy(manager, cfg.Strategy)
	if err != nil {
		return nil, err
	}

	log.Info("Pipeline ready",
		zap.String("strategy", strat.Name()),
		zap.Strings("columns", engine.Columns()),
	)

	return &Pipeline{
		config:   cfg,
		engine:   engine,
		strategy: strat,
		risk:     manager,
		policy:   pol,
		logger:   log,
		metrics:  metrics,
	}, nil
}

// Engine returns the indicator engine.
func (p *Pipeline) Engine() *indicator.Engine {
	return p.engine
}

// NewRunner creates the evaluation context for one symbol with a flat
// position.
func (p *Pipeline) NewRunner(symbol string) (*Runner, error) {
	stream, err := p.engine.NewStream()
	if err != nil {
		return nil, err
	}

	return &Runner{
		pipeline: p,
		symbol:   symbol,
		stream:   stream,
		tracker:  strategy.NewTracker(p.strategy),
		position: types.NewPosition(symbol),
		capital:  p.config.Strategy.Capital,
		logger:   p.logger.With(zap.String("symbol", symbol)),
	}, nil
}

// Replay feeds every bar of series through a fresh runner. With fill set,
// every non-HOLD signal is applied back as an immediate fill at the signal
// price. onBar, when not nil, is called after each bar.
func (p *Pipeline) Replay(ctx context.Context, series types.BarSeries, fill bool, onBar func()) ([]types.Signal, error) {
	runner, err := p.NewRunner(series.Symbol)
	if err != nil {
		return nil, err
	}

	signals := make([]types.Signal, 0, series.Len())

	for _, bar := range series.Bars {
		if err := ctx.Err(); err != nil {
			return signals, err
		}

		signal, err := runner.Process(bar)
		if err != nil {
			return signals, err
		}

		signals = append(signals, signal)

		if fill {
			if f, ok := types.FillFor(signal); ok {
				if _, err := runner.ApplyFill(f); err != nil {
					return signals, err
				}
			}
		}

		if onBar != nil {
			onBar()
		}
	}

	return signals, nil
}

// ReplayAll replays each series on its own goroutine. Results are returned
// in input order. onBar must be safe for concurrent use.
func (p *Pipeline) ReplayAll(ctx context.Context, series []types.BarSeries, fill bool, onBar func()) ([][]types.Signal, error) {
	results := make([][]types.Signal, len(series))
	group, ctx := errgroup.WithContext(ctx)

	for i := range series {
		group.Go(func() error {
			signals, err := p.Replay(ctx, series[i], fill, onBar)
			if err != nil {
				return errors.Wrapf(errors.GetCode(err), err, "replay %s", series[i].Symbol)
			}

			results[i] = signals

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	NameDualMA = "dual_ma"

	ReasonMACrossUp   = "ma_cross_up"
	ReasonMACrossDown = "ma_cross_down"
)

// DualMA trades the crossover of a fast and a slow simple moving average.
type DualMA struct {
	fast indicator.Indicator
	slow indicator.Indicator
}

// NewDualMA builds the strategy from the fast and slow windows.
func NewDualMA(cfg config.Config) (Strategy, error) {
	if cfg.Strategy.FastWindow >= cfg.Strategy.SlowWindow {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError, "fast_window %d must be shorter than slow_window %d", cfg.Strategy.FastWindow, cfg.Strategy.SlowWindow)
	}

	fast := indicator.NewMA()
	if err := fast.Config(cfg.Strategy.FastWindow); err != nil {
		return nil, err
	}

	slow := indicator.NewMA()
	if err := slow.Config(cfg.Strategy.SlowWindow); err != nil {
		return nil, err
	}

	return &DualMA{fast: fast, slow: slow}, nil
}

// Name implements Strategy.
func (s *DualMA) Name() string {
	return NameDualMA
}

// Indicators implements Strategy.
func (s *DualMA) Indicators() []indicator.Indicator {
	return []indicator.Indicator{s.fast, s.slow}
}

// Pairs implements Strategy.
func (s *DualMA) Pairs(snapshot types.IndicatorSnapshot) (Pair, Pair) {
	pair := Pair{
		Fast: snapshot.Get(s.fast.Key()),
		Slow: snapshot.Get(s.slow.Key()),
	}

	return pair, pair
}

// Reasons implements Strategy.
func (s *DualMA) Reasons() (string, string) {
	return ReasonMACrossUp, ReasonMACrossDown
}

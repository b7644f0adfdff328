package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	NameRSI = "rsi"

	ReasonRSIOversoldExit   = "rsi_oversold_exit"
	ReasonRSIOverboughtExit = "rsi_overbought_exit"
)

// RSI buys when the RSI climbs back above the oversold level and sells when
// it falls back below the overbought level.
type RSI struct {
	rsi        indicator.Indicator
	oversold   float64
	overbought float64
}

// NewRSI builds the strategy from the RSI period and thresholds.
func NewRSI(cfg config.Config) (Strategy, error) {
	if cfg.Strategy.Oversold >= cfg.Strategy.Overbought {
		return nil, errors.Newf(errors.ErrCodeStrategyConfigError, "oversold %v must be below overbought %v", cfg.Strategy.Oversold, cfg.Strategy.Overbought)
	}

	rsi := indicator.NewRSI()
	if err := rsi.Config(cfg.Strategy.RSIPeriod); err != nil {
		return nil, err
	}

	return &RSI{
		rsi:        rsi,
		oversold:   cfg.Strategy.Oversold,
		overbought: cfg.Strategy.Overbought,
	}, nil
}

// Name implements Strategy.
func (s *RSI) Name() string {
	return NameRSI
}

// Indicators implements Strategy.
func (s *RSI) Indicators() []indicator.Indicator {
	return []indicator.Indicator{s.rsi}
}

// Pairs implements Strategy.
func (s *RSI) Pairs(snapshot types.IndicatorSnapshot) (Pair, Pair) {
	value := snapshot.Get(s.rsi.Key())

	return Pair{Fast: value, Slow: constant(s.oversold)},
		Pair{Fast: value, Slow: constant(s.overbought)}
}

// Reasons implements Strategy.
func (s *RSI) Reasons() (string, string) {
	return ReasonRSIOversoldExit, ReasonRSIOverboughtExit
}

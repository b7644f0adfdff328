package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

const (
	NameMACD = "macd"

	ReasonMACDCrossUp   = "macd_cross_up"
	ReasonMACDCrossDown = "macd_cross_down"
)

// MACD trades the DIF line crossing its DEA signal line, which is the sign
// flip of the histogram.
type MACD struct {
	macd indicator.Indicator
}

// NewMACD builds the strategy from the configured MACD periods.
func NewMACD(cfg config.Config) (Strategy, error) {
	macd := indicator.NewMACD()
	if err := macd.Config(cfg.Indicators.MACD.Fast, cfg.Indicators.MACD.Slow, cfg.Indicators.MACD.Signal); err != nil {
		return nil, err
	}

	return &MACD{macd: macd}, nil
}

// Name implements Strategy.
func (s *MACD) Name() string {
	return NameMACD
}

// Indicators implements Strategy.
func (s *MACD) Indicators() []indicator.Indicator {
	return []indicator.Indicator{s.macd}
}

// Pairs implements Strategy.
func (s *MACD) Pairs(snapshot types.IndicatorSnapshot) (Pair, Pair) {
	pair := Pair{
		Fast: snapshot.Get(indicator.ColumnMACDDif),
		Slow: snapshot.Get(indicator.ColumnMACDDea),
	}

	return pair, pair
}

// Reasons implements Strategy.
func (s *MACD) Reasons() (string, string) {
	return ReasonMACDCrossUp, ReasonMACDCrossDown
}

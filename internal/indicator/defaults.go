package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
)

// FromConfig builds the configured indicators in a stable order:
// MA, EMA, MACD, KDJ, RSI, Bollinger, ATR.
func FromConfig(cfg config.IndicatorConfig) ([]Indicator, error) {
	var out []Indicator

	add := func(ind Indicator, params ...any) error {
		if err := ind.Config(params...); err != nil {
			return err
		}

		out = append(out, ind)

		return nil
	}

	for _, p := range cfg.MAPeriods {
		if err := add(NewMA(), p); err != nil {
			return nil, err
		}
	}

	for _, p := range cfg.EMAPeriods {
		if err := add(NewEMA(), p); err != nil {
			return nil, err
		}
	}

	if err := add(NewMACD(), cfg.MACD.Fast, cfg.MACD.Slow, cfg.MACD.Signal); err != nil {
		return nil, err
	}

	if err := add(NewKDJ(), cfg.KDJ.N, cfg.KDJ.M1, cfg.KDJ.M2); err != nil {
		return nil, err
	}

	for _, p := range cfg.RSIPeriods {
		if err := add(NewRSI(), p); err != nil {
			return nil, err
		}
	}

	if err := add(NewBollingerBands(), cfg.Bollinger.Period, cfg.Bollinger.K); err != nil {
		return nil, err
	}

	if err := add(NewATR(), cfg.ATRPeriod); err != nil {
		return nil, err
	}

	return Dedupe(out), nil
}

// Dedupe drops later indicators whose key was already seen.
func Dedupe(indicators []Indicator) []Indicator {
	seen := make(map[string]bool, len(indicators))
	out := make([]Indicator, 0, len(indicators))

	for _, ind := range indicators {
		if seen[ind.Key()] {
			continue
		}

		seen[ind.Key()] = true
		out = append(out, ind)
	}

	return out
}

// NewDefaultEngine builds an engine from the default indicator configuration.
func NewDefaultEngine() (*Engine, error) {
	indicators, err := FromConfig(config.Default().Indicators)
	if err != nil {
		return nil, err
	}

	return NewEngine(indicators...)
}

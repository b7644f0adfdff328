package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	ColumnMACDDif  = "macd_dif"
	ColumnMACDDea  = "macd_dea"
	ColumnMACDHist = "macd_hist"
)

// MACD represents the Moving Average Convergence Divergence indicator.
//
//	dif  = EMA(close, fast) - EMA(close, slow)
//	dea  = EMA(dif, signal)
//	hist = 2 * (dif - dea)
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Key implements Indicator.
func (m *MACD) Key() string {
	return string(m.Name())
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := intParam("fastPeriod", params[0])
	if err != nil {
		return err
	}

	slowPeriod, err := intParam("slowPeriod", params[1])
	if err != nil {
		return err
	}

	signalPeriod, err := intParam("signalPeriod", params[2])
	if err != nil {
		return err
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Columns implements Indicator.
func (m *MACD) Columns() []string {
	return []string{ColumnMACDDif, ColumnMACDDea, ColumnMACDHist}
}

// WarmUp implements Indicator.
func (m *MACD) WarmUp() int {
	return 1
}

// NewCalculator implements Indicator.
func (m *MACD) NewCalculator() Calculator {
	return &macdCalculator{
		fast:   newSpanSmoother(m.fastPeriod),
		slow:   newSpanSmoother(m.slowPeriod),
		signal: newSpanSmoother(m.signalPeriod),
	}
}

type macdCalculator struct {
	fast   *smoother
	slow   *smoother
	signal *smoother
}

func (c *macdCalculator) Update(bar types.Bar) []optional.Option[float64] {
	dif := c.fast.update(bar.Close) - c.slow.update(bar.Close)
	dea := c.signal.update(dif)

	return []optional.Option[float64]{some(dif), some(dea), some(2 * (dif - dea))}
}

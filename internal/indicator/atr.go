package indicator

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// ATR represents the Average True Range indicator: a simple rolling mean of
// the true range. The first bar's true range is high-low.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Key returns the configured column prefix, e.g. atr14.
func (a *ATR) Key() string {
	return fmt.Sprintf("%s%d", a.Name(), a.period)
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam("period", params[0])
	if err != nil {
		return err
	}

	a.period = period

	return nil
}

// Columns implements Indicator.
func (a *ATR) Columns() []string {
	return []string{a.Key()}
}

// WarmUp implements Indicator.
func (a *ATR) WarmUp() int {
	return a.period
}

// NewCalculator implements Indicator.
func (a *ATR) NewCalculator() Calculator {
	return &atrCalculator{ranges: newWindow(a.period)}
}

type atrCalculator struct {
	ranges    *window
	prevClose optional.Option[float64]
}

func (c *atrCalculator) Update(bar types.Bar) []optional.Option[float64] {
	c.ranges.push(trueRange(bar, c.prevClose))
	c.prevClose = some(bar.Close)

	if !c.ranges.full() {
		return []optional.Option[float64]{none()}
	}

	return []optional.Option[float64]{some(c.ranges.mean())}
}

func trueRange(bar types.Bar, prevClose optional.Option[float64]) float64 {
	tr := bar.High - bar.Low
	if prevClose.IsNone() {
		return tr
	}

	pc := prevClose.Unwrap()

	return math.Max(tr, math.Max(math.Abs(bar.High-pc), math.Abs(bar.Low-pc)))
}

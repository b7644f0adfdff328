package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
//
// Gains and losses are averaged over a simple rolling window of period bars.
// The first bar has no previous close and contributes a zero gain and loss,
// so the first value is defined at index period-1. When the average loss is
// zero the RSI is exactly 100.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Key returns the configured column prefix, e.g. rsi6.
func (r *RSI) Key() string {
	return fmt.Sprintf("%s%d", r.Name(), r.period)
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam("period", params[0])
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Columns implements Indicator.
func (r *RSI) Columns() []string {
	return []string{r.Key()}
}

// WarmUp implements Indicator.
func (r *RSI) WarmUp() int {
	return r.period
}

// NewCalculator implements Indicator.
func (r *RSI) NewCalculator() Calculator {
	return &rsiCalculator{
		gains:  newWindow(r.period),
		losses: newWindow(r.period),
	}
}

type rsiCalculator struct {
	gains     *window
	losses    *window
	prevClose optional.Option[float64]
}

func (c *rsiCalculator) Update(bar types.Bar) []optional.Option[float64] {
	gain, loss := 0.0, 0.0

	if c.prevClose.IsSome() {
		change := bar.Close - c.prevClose.Unwrap()
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
	}

	c.prevClose = some(bar.Close)
	c.gains.push(gain)
	c.losses.push(loss)

	if !c.gains.full() {
		return []optional.Option[float64]{none()}
	}

	return []optional.Option[float64]{some(relativeStrength(c.gains.mean(), c.losses.mean()))}
}

func relativeStrength(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}

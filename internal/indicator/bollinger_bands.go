package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	ColumnBollMid  = "boll_mid"
	ColumnBollStd  = "boll_std"
	ColumnBollUp   = "boll_up"
	ColumnBollDown = "boll_down"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
// The standard deviation is the population deviation over the same window
// as the middle band.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,  // Default period
		stdDev: 2.0, // Default standard deviation
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Key implements Indicator.
func (bb *BollingerBands) Key() string {
	return string(bb.Name())
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, err := intParam("period", params[0])
	if err != nil {
		return err
	}

	stdDev, err := floatParam("stdDev", params[1])
	if err != nil {
		return err
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// Columns implements Indicator.
func (bb *BollingerBands) Columns() []string {
	return []string{ColumnBollMid, ColumnBollStd, ColumnBollUp, ColumnBollDown}
}

// WarmUp implements Indicator.
func (bb *BollingerBands) WarmUp() int {
	return bb.period
}

// NewCalculator implements Indicator.
func (bb *BollingerBands) NewCalculator() Calculator {
	return &bollingerCalculator{
		closes: newWindow(bb.period),
		k:      bb.stdDev,
	}
}

type bollingerCalculator struct {
	closes *window
	k      float64
}

func (c *bollingerCalculator) Update(bar types.Bar) []optional.Option[float64] {
	c.closes.push(bar.Close)

	if !c.closes.full() {
		return []optional.Option[float64]{none(), none(), none(), none()}
	}

	mid := c.closes.mean()
	std := c.closes.stddev()

	return []optional.Option[float64]{some(mid), some(std), some(mid + c.k*std), some(mid - c.k*std)}
}

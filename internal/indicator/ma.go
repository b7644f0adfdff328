package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Key returns the configured column prefix, e.g. ma20.
func (m *MA) Key() string {
	return fmt.Sprintf("%s%d", m.Name(), m.period)
}

// Config configures the MA indicator. Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam("period", params[0])
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// Columns implements Indicator.
func (m *MA) Columns() []string {
	return []string{m.Key()}
}

// WarmUp implements Indicator.
func (m *MA) WarmUp() int {
	return m.period
}

// NewCalculator implements Indicator.
func (m *MA) NewCalculator() Calculator {
	return &maCalculator{closes: newWindow(m.period)}
}

type maCalculator struct {
	closes *window
}

// Update adds the close and returns the mean of the last period closes.
func (c *maCalculator) Update(bar types.Bar) []optional.Option[float64] {
	c.closes.push(bar.Close)

	if !c.closes.full() {
		return []optional.Option[float64]{none()}
	}

	return []optional.Option[float64]{some(c.closes.mean())}
}

package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Key returns the configured column prefix, e.g. ema12.
func (e *EMA) Key() string {
	return fmt.Sprintf("%s%d", e.Name(), e.period)
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam("period", params[0])
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// Columns implements Indicator.
func (e *EMA) Columns() []string {
	return []string{e.Key()}
}

// WarmUp implements Indicator. EMA is defined from the first bar.
func (e *EMA) WarmUp() int {
	return 1
}

// NewCalculator implements Indicator.
func (e *EMA) NewCalculator() Calculator {
	return &emaCalculator{ema: newSpanSmoother(e.period)}
}

type emaCalculator struct {
	ema *smoother
}

func (c *emaCalculator) Update(bar types.Bar) []optional.Option[float64] {
	return []optional.Option[float64]{some(c.ema.update(bar.Close))}
}

// smoother is the recursive exponential smoothing used by every EMA-family
// indicator. It is seeded with the first value it receives:
// EMA_0 = x_0, EMA_t = alpha*x_t + (1-alpha)*EMA_{t-1}.
type smoother struct {
	alpha  float64
	value  float64
	seeded bool
}

// newSpanSmoother uses alpha = 2/(span+1).
func newSpanSmoother(span int) *smoother {
	return &smoother{alpha: 2.0 / float64(span+1)}
}

// newAlphaSmoother uses alpha = 1/n, as in KDJ.
func newAlphaSmoother(n int) *smoother {
	return &smoother{alpha: 1.0 / float64(n)}
}

func (s *smoother) update(x float64) float64 {
	if !s.seeded {
		s.value = x
		s.seeded = true

		return s.value
	}

	s.value = s.alpha*x + (1-s.alpha)*s.value

	return s.value
}

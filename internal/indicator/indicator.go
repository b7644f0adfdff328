// Package indicator computes technical indicator series from bar history.
//
// Every indicator is built on an incremental Calculator that consumes one bar
// at a time. Batch computation (Engine.Compute) replays the bars through a
// fresh Stream, so batch and streaming output are bit-identical.
package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the indicator family
	Name() types.IndicatorType
	// Key identifies the configured instance, e.g. ma20 or macd
	Key() string
	// Config configures the indicator from positional parameters
	Config(params ...any) error
	// Columns lists the output columns in the order Calculator.Update returns them
	Columns() []string
	// WarmUp is the number of bars needed before the first value can be defined
	WarmUp() int
	// NewCalculator returns a fresh incremental calculator
	NewCalculator() Calculator
}

// Calculator holds the recursive state of one indicator for one symbol.
// Bars must be fed in ascending time order.
type Calculator interface {
	Update(bar types.Bar) []optional.Option[float64]
}

func none() optional.Option[float64] {
	return optional.None[float64]()
}

func some(v float64) optional.Option[float64] {
	return optional.Some(v)
}

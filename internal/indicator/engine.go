package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Engine computes a fixed set of indicators. It holds configuration only and
// is safe to share between goroutines working on different symbols.
type Engine struct {
	registry IndicatorRegistry
	columns  []string
}

// NewEngine registers the given indicators. Two indicators may not share a
// key or an output column. The engine takes ownership of the indicators;
// callers must not reconfigure them afterwards.
func NewEngine(indicators ...Indicator) (*Engine, error) {
	registry := NewIndicatorRegistry()
	seen := make(map[string]string)

	var columns []string

	for _, ind := range indicators {
		for _, col := range ind.Columns() {
			if owner, ok := seen[col]; ok {
				return nil, errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "column %s produced by both %s and %s", col, owner, ind.Key())
			}

			seen[col] = ind.Key()
		}

		if err := registry.RegisterIndicator(ind); err != nil {
			return nil, err
		}

		columns = append(columns, ind.Columns()...)
	}

	return &Engine{
		registry: registry,
		columns:  columns,
	}, nil
}

// Columns lists every output column in registration order.
func (e *Engine) Columns() []string {
	out := make([]string, len(e.columns))
	copy(out, e.columns)

	return out
}

// Description is a read-only view of a registered indicator.
type Description struct {
	Key     string
	Name    types.IndicatorType
	Columns []string
	WarmUp  int
}

// Describe returns the indicator registered under key. The engine's
// indicators themselves are never handed out, so they cannot be reconfigured
// once the engine is shared.
func (e *Engine) Describe(key string) (Description, error) {
	ind, err := e.registry.GetIndicator(key)
	if err != nil {
		return Description{}, err
	}

	return Description{
		Key:     ind.Key(),
		Name:    ind.Name(),
		Columns: ind.Columns(),
		WarmUp:  ind.WarmUp(),
	}, nil
}

// Compute derives every indicator series for the bars. It is a pure
// function of its input: calling it twice yields identical output.
func (e *Engine) Compute(series types.BarSeries) (types.IndicatorSeries, error) {
	out := make(types.IndicatorSeries, len(e.columns))
	for _, col := range e.columns {
		out[col] = make(types.Series, 0, series.Len())
	}

	stream, err := e.NewStream()
	if err != nil {
		return nil, err
	}

	for i, bar := range series.Bars {
		snap, err := stream.Update(bar)
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "bar %d of %s", i, series.Symbol)
		}

		for _, col := range e.columns {
			out[col] = append(out[col], snap[col])
		}
	}

	return out, nil
}

// NewStream returns an incremental evaluator for one symbol.
func (e *Engine) NewStream() (*Stream, error) {
	keys := e.registry.ListIndicators()
	stream := &Stream{
		indicators:  make([]Indicator, 0, len(keys)),
		calculators: make([]Calculator, 0, len(keys)),
	}

	for _, key := range keys {
		ind, err := e.registry.GetIndicator(key)
		if err != nil {
			return nil, err
		}

		stream.indicators = append(stream.indicators, ind)
		stream.calculators = append(stream.calculators, ind.NewCalculator())
	}

	return stream, nil
}

// Stream updates every indicator one bar at a time. A Stream belongs to a
// single symbol and is not safe for concurrent use.
type Stream struct {
	indicators  []Indicator
	calculators []Calculator
	lastTime    time.Time
	count       int
}

// Update validates the bar, feeds it to every calculator and returns the
// values for this bar. Out-of-order, duplicate or malformed bars are rejected
// before any state is touched.
func (s *Stream) Update(bar types.Bar) (types.IndicatorSnapshot, error) {
	if err := bar.Validate(); err != nil {
		return nil, err
	}

	if s.count > 0 {
		if err := types.CheckOrder(s.lastTime, bar.Time); err != nil {
			return nil, err
		}
	}

	snap := make(types.IndicatorSnapshot)

	for i, calc := range s.calculators {
		values := calc.Update(bar)
		for j, col := range s.indicators[i].Columns() {
			snap[col] = values[j]
		}
	}

	s.lastTime = bar.Time
	s.count++

	return snap, nil
}

// Count returns the number of bars consumed.
func (s *Stream) Count() int {
	return s.count
}

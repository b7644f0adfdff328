package types

import (
	"math"
	"sort"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Series is a sequence of indicator values aligned 1:1 with a BarSeries.
// Warm-up positions hold None.
type Series []optional.Option[float64]

// Defined reports whether index i holds a value.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && s[i].IsSome()
}

// Value returns the value at index i and whether it is defined.
func (s Series) Value(i int) (float64, bool) {
	if !s.Defined(i) {
		return 0, false
	}

	return s[i].Unwrap(), true
}

// Last returns the newest entry, None when the series is empty.
func (s Series) Last() optional.Option[float64] {
	if len(s) == 0 {
		return optional.None[float64]()
	}

	return s[len(s)-1]
}

// FirstDefined returns the index of the first defined value or -1.
func (s Series) FirstDefined() int {
	for i, v := range s {
		if v.IsSome() {
			return i
		}
	}

	return -1
}

// Floats converts the series to plain floats with NaN for undefined entries.
// Only meant for output; NaN never flows back into calculations.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.TakeOr(math.NaN())
	}

	return out
}

// IndicatorSeries maps a column name (ma20, macd_hist, rsi6, ...) to its series.
type IndicatorSeries map[string]Series

// Columns returns the column names sorted alphabetically.
func (is IndicatorSeries) Columns() []string {
	cols := make([]string, 0, len(is))
	for name := range is {
		cols = append(cols, name)
	}

	sort.Strings(cols)

	return cols
}

// Snapshot returns the row at index i.
func (is IndicatorSeries) Snapshot(i int) IndicatorSnapshot {
	snap := make(IndicatorSnapshot, len(is))
	for name, series := range is {
		if i >= 0 && i < len(series) {
			snap[name] = series[i]
		} else {
			snap[name] = optional.None[float64]()
		}
	}

	return snap
}

// IndicatorSnapshot holds every indicator column for a single bar.
type IndicatorSnapshot map[string]optional.Option[float64]

// Get returns the column value, None when the column is unknown or undefined.
func (s IndicatorSnapshot) Get(column string) optional.Option[float64] {
	v, ok := s[column]
	if !ok {
		return optional.None[float64]()
	}

	return v
}

// Float returns a defined column value. Unknown columns fail with
// ErrCodeColumnNotFound, warm-up values with an InsufficientDataError.
func (s IndicatorSnapshot) Float(column string) (float64, error) {
	v, ok := s[column]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeColumnNotFound, "indicator column %s not found", column)
	}

	if v.IsNone() {
		return 0, errors.NewInsufficientDataErrorf(0, 0, column, "indicator column %s is undefined for this bar", column)
	}

	return v.Unwrap(), nil
}

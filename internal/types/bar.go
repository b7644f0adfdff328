package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Bar is one OHLCV record for a fixed time interval.
type Bar struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Validate checks that every price is finite and positive and the volume is
// finite and non-negative. OHLC ordering (high >= low etc.) is not enforced.
func (b Bar) Validate() error {
	prices := []struct {
		name  string
		value float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	}

	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPrice, "bar at %s has invalid %s price %v", b.Time.Format(time.RFC3339), p.name, p.value)
		}
	}

	if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) || b.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidSize, "bar at %s has invalid volume %v", b.Time.Format(time.RFC3339), b.Volume)
	}

	return nil
}

// CheckOrder returns an error unless next is strictly after prev.
func CheckOrder(prev, next time.Time) error {
	if next.Equal(prev) {
		return errors.Newf(errors.ErrCodeDuplicateTimestamp, "duplicate bar timestamp %s", next.Format(time.RFC3339))
	}

	if next.Before(prev) {
		return errors.Newf(errors.ErrCodeInvalidTimestamp, "bar timestamp %s is before previous bar %s", next.Format(time.RFC3339), prev.Format(time.RFC3339))
	}

	return nil
}

// BarSeries is the ascending bar history of one symbol. It is append-only.
type BarSeries struct {
	Symbol string
	Bars   []Bar
}

// NewBarSeries builds a series from bars, validating each one in order.
func NewBarSeries(symbol string, bars ...Bar) (BarSeries, error) {
	series := BarSeries{
		Symbol: symbol,
		Bars:   make([]Bar, 0, len(bars)),
	}

	for _, bar := range bars {
		if err := series.Append(bar); err != nil {
			return BarSeries{}, err
		}
	}

	return series, nil
}

// Append adds a bar to the end of the series. The bar must be valid and
// strictly newer than the current last bar.
func (s *BarSeries) Append(bar Bar) error {
	if err := bar.Validate(); err != nil {
		return err
	}

	if len(s.Bars) > 0 {
		if err := CheckOrder(s.Bars[len(s.Bars)-1].Time, bar.Time); err != nil {
			return err
		}
	}

	if bar.Symbol == "" {
		bar.Symbol = s.Symbol
	}

	s.Bars = append(s.Bars, bar)

	return nil
}

// Len returns the number of bars.
func (s BarSeries) Len() int {
	return len(s.Bars)
}

// Last returns the newest bar and false when the series is empty.
func (s BarSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the close prices in order.
func (s BarSeries) Closes() []float64 {
	return s.field(func(b Bar) float64 { return b.Close })
}

// Highs returns the high prices in order.
func (s BarSeries) Highs() []float64 {
	return s.field(func(b Bar) float64 { return b.High })
}

// Lows returns the low prices in order.
func (s BarSeries) Lows() []float64 {
	return s.field(func(b Bar) float64 { return b.Low })
}

func (s BarSeries) field(get func(Bar) float64) []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = get(b)
	}

	return out
}

// Package cross derives golden and death cross events from two aligned
// series.
package cross

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Detector classifies crossovers one bar at a time. It only remembers the
// previous difference between the two series. A Detector belongs to a single
// symbol and pair of series.
type Detector struct {
	prev optional.Option[float64]
}

// NewDetector returns a detector with no history.
func NewDetector() *Detector {
	return &Detector{prev: optional.None[float64]()}
}

// Update consumes the values of the fast series a and the slow series b for
// the current bar. An undefined input never fires and leaves the next bar
// without a previous difference.
func (d *Detector) Update(a, b optional.Option[float64]) types.CrossType {
	if a.IsNone() || b.IsNone() {
		d.prev = optional.None[float64]()

		return types.CrossNone
	}

	diff := a.Unwrap() - b.Unwrap()
	prev := d.prev
	d.prev = optional.Some(diff)

	if prev.IsNone() {
		return types.CrossNone
	}

	return classify(prev.Unwrap(), diff)
}

// Reset clears the remembered difference.
func (d *Detector) Reset() {
	d.prev = optional.None[float64]()
}

func classify(prev, curr float64) types.CrossType {
	switch {
	case curr > 0 && prev <= 0:
		return types.CrossGolden
	case curr < 0 && prev >= 0:
		return types.CrossDeath
	default:
		return types.CrossNone
	}
}

// Detect returns every crossover of a over b in index order.
func Detect(a, b types.Series) ([]types.CrossEvent, error) {
	if len(a) != len(b) {
		return nil, errors.Newf(errors.ErrCodeLengthMismatch, "series lengths differ: %d vs %d", len(a), len(b))
	}

	detector := NewDetector()

	var events []types.CrossEvent

	for i := range a {
		if kind := detector.Update(a[i], b[i]); kind != types.CrossNone {
			events = append(events, types.CrossEvent{Index: i, Type: kind})
		}
	}

	return events, nil
}

package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/cross"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Tracker follows one symbol through a strategy. It keeps a detector per
// pair so only golden crosses of the entry pair and death crosses of the
// exit pair are reported.
type Tracker struct {
	strategy Strategy
	golden   *cross.Detector
	death    *cross.Detector
}

// NewTracker returns a tracker with no history.
func NewTracker(strategy Strategy) *Tracker {
	return &Tracker{
		strategy: strategy,
		golden:   cross.NewDetector(),
		death:    cross.NewDetector(),
	}
}

// Update consumes the snapshot of the next bar and returns the cross it
// produced with the matching reason.
func (t *Tracker) Update(snapshot types.IndicatorSnapshot) (types.CrossType, string) {
	goldenPair, deathPair := t.strategy.Pairs(snapshot)
	goldenReason, deathReason := t.strategy.Reasons()

	up := t.golden.Update(goldenPair.Fast, goldenPair.Slow)
	down := t.death.Update(deathPair.Fast, deathPair.Slow)

	switch {
	case up == types.CrossGolden:
		return types.CrossGolden, goldenReason
	case down == types.CrossDeath:
		return types.CrossDeath, deathReason
	default:
		return types.CrossNone, ""
	}
}

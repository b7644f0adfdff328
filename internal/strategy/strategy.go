// Package strategy defines the crossover strategies that drive entries and
// exits, and the per-symbol tracker that turns indicator snapshots into
// cross events.
package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Pair is a fast and a slow value whose crossover is traded.
type Pair struct {
	Fast optional.Option[float64]
	Slow optional.Option[float64]
}

// Strategy selects the lines to watch. Implementations hold configuration
// only and may be shared between symbols.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// Indicators lists the indicators the strategy reads. The engine must
	// compute them.
	Indicators() []indicator.Indicator
	// Pairs returns the pair whose golden cross is an entry and the pair
	// whose death cross is an exit.
	Pairs(snapshot types.IndicatorSnapshot) (golden Pair, death Pair)
	// Reasons returns the signal reasons for golden and death crosses.
	Reasons() (golden string, death string)
}

func constant(v float64) optional.Option[float64] {
	return optional.Some(v)
}

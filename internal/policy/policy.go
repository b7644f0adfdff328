// Package policy merges forced exits and crossover events into one trade
// signal per bar.
package policy

import (
	"math"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/risk"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Policy turns risk decisions and crossovers into signals. It is immutable
// and may be shared across symbols.
type Policy struct {
	risk            *risk.Manager
	allowShort      bool
	volumeThreshold float64
}

// NewPolicy creates a policy from the strategy switches. The configured
// capital must be positive so that entry sizing cannot fail mid-stream.
func NewPolicy(manager *risk.Manager, cfg config.StrategyConfig) (*Policy, error) {
	if manager == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "risk manager is required")
	}

	if math.IsNaN(cfg.Capital) || math.IsInf(cfg.Capital, 0) || cfg.Capital <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "capital must be a finite positive amount, got %v", cfg.Capital)
	}

	if cfg.VolumeThreshold < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "volume_threshold must not be negative, got %v", cfg.VolumeThreshold)
	}

	return &Policy{
		risk:            manager,
		allowShort:      cfg.AllowShort,
		volumeThreshold: cfg.VolumeThreshold,
	}, nil
}

// Evaluate produces the signal for bar, in strict precedence:
//
//  1. a forced exit from the risk manager
//  2. a golden cross while FLAT or SHORT
//  3. a death cross while LONG or FLAT
//  4. HOLD
//
// pos is updated by the risk manager. reason tags signals caused by cross.
func (p *Policy) Evaluate(pos *types.Position, bar types.Bar, cross types.CrossType, reason string, capital float64) (types.Signal, error) {
	decision, err := p.risk.Evaluate(pos, bar)
	if err != nil {
		return types.Signal{}, err
	}

	signal := types.Signal{
		Symbol: bar.Symbol,
		Time:   bar.Time,
		Action: types.ActionHold,
		Price:  bar.Close,
		Reason: types.ReasonNoSignal,
	}

	if decision.Exit {
		signal.Action = closeAction(decision.Side)
		signal.Size = decision.Size
		signal.Reason = decision.Reason

		return signal, nil
	}

	side := types.SideFlat
	if pos.IsOpen() {
		side = pos.Side
	}

	switch {
	case cross == types.CrossGolden && side != types.SideLong:
		return p.onGolden(signal, pos, bar, side, reason, capital)
	case cross == types.CrossDeath && side != types.SideShort:
		return p.onDeath(signal, pos, bar, side, reason, capital)
	}

	return signal, nil
}

func (p *Policy) onGolden(signal types.Signal, pos *types.Position, bar types.Bar, side types.Side, reason string, capital float64) (types.Signal, error) {
	size, skip, err := p.entrySize(bar, capital)
	if err != nil {
		return types.Signal{}, err
	}

	switch {
	case size > 0:
		signal.Action = types.ActionBuy
		signal.Size = size
		signal.Reason = reason

		if side == types.SideShort {
			signal.Size += pos.Size
		}
	case side == types.SideShort:
		signal.Action = types.ActionCoverToClose
		signal.Size = pos.Size
		signal.Reason = reason
	default:
		signal.Reason = skip
	}

	return signal, nil
}

func (p *Policy) onDeath(signal types.Signal, pos *types.Position, bar types.Bar, side types.Side, reason string, capital float64) (types.Signal, error) {
	size := 0
	skip := types.ReasonShortDisabled

	if p.allowShort {
		var err error

		size, skip, err = p.entrySize(bar, capital)
		if err != nil {
			return types.Signal{}, err
		}
	}

	switch {
	case size > 0:
		signal.Action = types.ActionSellShort
		signal.Size = size
		signal.Reason = reason

		if side == types.SideLong {
			signal.Size += pos.Size
		}
	case side == types.SideLong:
		signal.Action = types.ActionSellToClose
		signal.Size = pos.Size
		signal.Reason = reason
	default:
		signal.Reason = skip
	}

	return signal, nil
}

// entrySize sizes a new entry on bar. A zero size comes with the reason the
// entry was skipped.
func (p *Policy) entrySize(bar types.Bar, capital float64) (int, string, error) {
	if bar.Volume < p.volumeThreshold {
		return 0, types.ReasonLowVolume, nil
	}

	size, err := p.risk.CalculatePosition(capital, bar.Close)
	if err != nil {
		return 0, "", err
	}

	if size == 0 {
		return 0, types.ReasonZeroSize, nil
	}

	return size, "", nil
}

func closeAction(side types.Side) types.Action {
	if side == types.SideShort {
		return types.ActionCoverToClose
	}

	return types.ActionSellToClose
}

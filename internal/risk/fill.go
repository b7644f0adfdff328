package risk

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
)

// ApplyFill updates pos with an execution reported by the host and returns
// the realized PnL of any exposure it closed.
//
// A fill on a flat position opens it. A fill in the direction of the open
// position adds to it at the size-weighted average entry. An opposite fill
// reduces the position; when it is larger than the open size it reverses
// the position at the fill price, unless it is reduce-only, which is an
// error. A reduce-only fill for a flat position is a no-op, since the
// manager may have closed the position already.
func (m *Manager) ApplyFill(pos *types.Position, fill types.Fill) (float64, error) {
	if pos == nil {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "position is nil")
	}

	if err := fill.Validate(); err != nil {
		return 0, err
	}

	side := fillDirection(fill.Side)

	if !pos.IsOpen() {
		if fill.ReduceOnly {
			return 0, nil
		}

		pos.Open(side, fill.Price, fill.Size, fill.Time)

		return 0, nil
	}

	if side == pos.Side {
		if fill.ReduceOnly {
			return 0, errors.Newf(errors.ErrCodeInvalidFill, "reduce-only %s fill would increase a %s position", fill.Side, pos.Side)
		}

		addToPosition(pos, fill)

		return 0, nil
	}

	if fill.Size > pos.Size && fill.ReduceOnly {
		return 0, errors.Newf(errors.ErrCodeInvalidSize, "reduce-only fill of %d exceeds open size %d", fill.Size, pos.Size)
	}

	closed := min(fill.Size, pos.Size)
	pnl := RealizedPnL(pos.Side, pos.EntryPrice, fill.Price, closed)

	remaining := fill.Size - closed
	pos.Size -= closed

	if pos.Size == 0 {
		pos.Reset()
	}

	if remaining > 0 {
		pos.Open(side, fill.Price, remaining, fill.Time)
	}

	return pnl, nil
}

func fillDirection(side types.FillSide) types.Side {
	if side == types.FillSideBuy {
		return types.SideLong
	}

	return types.SideShort
}

func addToPosition(pos *types.Position, fill types.Fill) {
	oldSize := decimal.NewFromInt(int64(pos.Size))
	addSize := decimal.NewFromInt(int64(fill.Size))
	cost := decimal.NewFromFloat(pos.EntryPrice).Mul(oldSize).
		Add(decimal.NewFromFloat(fill.Price).Mul(addSize))

	pos.EntryPrice = cost.Div(oldSize.Add(addSize)).InexactFloat64()
	pos.Size += fill.Size
	pos.HighestPriceSinceEntry = max(pos.HighestPriceSinceEntry, fill.Price)
	pos.LowestPriceSinceEntry = min(pos.LowestPriceSinceEntry, fill.Price)
}

// RealizedPnL is the profit of closing qty units of a side position opened
// at entry, at price.
func RealizedPnL(side types.Side, entry, price float64, qty int) float64 {
	move := decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(entry))
	if side == types.SideShort {
		move = move.Neg()
	}

	return move.Mul(decimal.NewFromInt(int64(qty))).InexactFloat64()
}

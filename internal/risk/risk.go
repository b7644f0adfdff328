// Package risk implements the per-position stop-loss and trailing
// take-profit state machine, fill accounting and entry sizing.
package risk

import (
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Decision is the outcome of evaluating a position against one bar.
type Decision struct {
	// Exit is true when the position was force-closed on this bar.
	Exit bool
	// Side and Size describe the exposure that was closed.
	Side   types.Side
	Size   int
	Price  float64
	Reason string
}

// Manager holds immutable risk configuration. The position state it acts on
// is owned by the caller, so one Manager can serve many symbols.
type Manager struct {
	config config.RiskConfig
}

// NewManager validates cfg and returns a manager.
func NewManager(cfg config.RiskConfig) (*Manager, error) {
	if !validPercent(cfg.StopLossPct) {
		return nil, errors.Newf(errors.ErrCodeInvalidPercent, "stop_loss_pct must be in (0, 100], got %v", cfg.StopLossPct)
	}

	if !validPercent(cfg.TakeProfitPct) {
		return nil, errors.Newf(errors.ErrCodeInvalidPercent, "take_profit_pct must be in (0, 100], got %v", cfg.TakeProfitPct)
	}

	if !validPercent(cfg.RiskPercent) {
		return nil, errors.Newf(errors.ErrCodeInvalidPercent, "risk_percent must be in (0, 100], got %v", cfg.RiskPercent)
	}

	if cfg.MaxPositionSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidSize, "max_position_size must be positive, got %d", cfg.MaxPositionSize)
	}

	return &Manager{config: cfg}, nil
}

func validPercent(v float64) bool {
	return v > 0 && v <= 100
}

// Config returns the manager configuration.
func (m *Manager) Config() config.RiskConfig {
	return m.config
}

// Evaluate updates the trailing extreme of pos with bar and checks the stop
// loss, then the trailing take-profit. A forced exit resets pos to FLAT.
// A flat position, or one without an entry price, is left untouched.
func (m *Manager) Evaluate(pos *types.Position, bar types.Bar) (Decision, error) {
	if pos == nil {
		return Decision{}, errors.New(errors.ErrCodeInvalidParameter, "position is nil")
	}

	if err := bar.Validate(); err != nil {
		return Decision{}, err
	}

	if !pos.IsOpen() {
		return Decision{Price: bar.Close, Reason: types.ReasonNoPosition}, nil
	}

	stop := decimal.NewFromFloat(m.config.StopLossPct)
	takeProfit := decimal.NewFromFloat(m.config.TakeProfitPct)

	var reason string

	switch pos.Side {
	case types.SideLong:
		pos.HighestPriceSinceEntry = max(pos.HighestPriceSinceEntry, bar.High)

		switch {
		case drop(pos.EntryPrice, bar.Close).GreaterThanOrEqual(stop):
			reason = types.ReasonStopLoss
		case drop(pos.HighestPriceSinceEntry, bar.Close).GreaterThanOrEqual(takeProfit):
			reason = types.ReasonTrailingTakeProfit
		}
	case types.SideShort:
		pos.LowestPriceSinceEntry = min(pos.LowestPriceSinceEntry, bar.Low)

		switch {
		case rise(pos.EntryPrice, bar.Close).GreaterThanOrEqual(stop):
			reason = types.ReasonStopLoss
		case rise(pos.LowestPriceSinceEntry, bar.Close).GreaterThanOrEqual(takeProfit):
			reason = types.ReasonTrailingTakeProfit
		}
	default:
		return Decision{}, errors.Newf(errors.ErrCodeInvalidParameter, "unknown position side %q", pos.Side)
	}

	if reason == "" {
		return Decision{Side: pos.Side, Size: pos.Size, Price: bar.Close, Reason: types.ReasonNoSignal}, nil
	}

	decision := Decision{
		Exit:   true,
		Side:   pos.Side,
		Size:   pos.Size,
		Price:  bar.Close,
		Reason: reason,
	}
	pos.Reset()

	return decision, nil
}

// drop is the fall from ref to price as a percentage of ref.
func drop(ref, price float64) decimal.Decimal {
	r := decimal.NewFromFloat(ref)

	return r.Sub(decimal.NewFromFloat(price)).Div(r).Mul(hundred)
}

// rise is the gain from ref to price as a percentage of ref.
func rise(ref, price float64) decimal.Decimal {
	return drop(ref, price).Neg()
}

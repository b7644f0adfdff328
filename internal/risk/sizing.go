package risk

import (
	"math"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
)

// CalculatePosition sizes a new entry so that a stop-loss hit loses
// risk_percent of capital:
//
//	floor(capital * risk% / (price * stop%))
//
// capped at max_position_size. It has no side effects.
func (m *Manager) CalculatePosition(capital, price float64) (int, error) {
	return PositionSize(capital, price, m.config.RiskPercent, m.config.StopLossPct, m.config.MaxPositionSize)
}

// PositionSize is the stateless sizing rule behind Manager.CalculatePosition.
func PositionSize(capital, price, riskPct, stopLossPct float64, maxSize int) (int, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPrice, "price must be a finite positive number, got %v", price)
	}

	if math.IsNaN(stopLossPct) || math.IsInf(stopLossPct, 0) || stopLossPct <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPercent, "stop_loss_pct must be a finite positive number, got %v", stopLossPct)
	}

	if math.IsNaN(riskPct) || math.IsInf(riskPct, 0) || riskPct < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPercent, "risk_percent must not be negative, got %v", riskPct)
	}

	if math.IsNaN(capital) || math.IsInf(capital, 0) || capital < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "capital must be a finite non-negative amount, got %v", capital)
	}

	budget := decimal.NewFromFloat(capital).Mul(decimal.NewFromFloat(riskPct))
	perUnit := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(stopLossPct))
	size := budget.Div(perUnit).Floor()

	if maxSize > 0 && size.GreaterThan(decimal.NewFromInt(int64(maxSize))) {
		return maxSize, nil
	}

	return int(size.IntPart()), nil
}

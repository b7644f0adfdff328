package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Side is the direction of a position.
type Side string

const (
	SideFlat  Side = "FLAT"
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// FillSide is the direction of an executed fill reported by the host.
type FillSide string

const (
	FillSideBuy  FillSide = "BUY"
	FillSideSell FillSide = "SELL"
)

// Fill is an execution report from the strategy host.
type Fill struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Side   FillSide  `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	Price  float64   `yaml:"price" json:"price" csv:"price" validate:"gt=0"`
	Size   int       `yaml:"size" json:"size" csv:"size" validate:"gt=0"`
	// ReduceOnly fills may only shrink an open position. One that arrives
	// for a flat position is ignored.
	ReduceOnly bool `yaml:"reduce_only" json:"reduce_only" csv:"reduce_only"`
}

// Validate validates the Fill struct.
func (f Fill) Validate() error {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFill, "invalid fill", err)
	}

	return nil
}

// FillFor returns the fill that executes signal in full at the signal price.
// HOLD signals have no fill.
func FillFor(signal Signal) (Fill, bool) {
	fill := Fill{
		Symbol: signal.Symbol,
		Time:   signal.Time,
		Price:  signal.Price,
		Size:   signal.Size,
	}

	switch signal.Action {
	case ActionBuy:
		fill.Side = FillSideBuy
	case ActionCoverToClose:
		fill.Side = FillSideBuy
		fill.ReduceOnly = true
	case ActionSellShort:
		fill.Side = FillSideSell
	case ActionSellToClose:
		fill.Side = FillSideSell
		fill.ReduceOnly = true
	default:
		return Fill{}, false
	}

	return fill, true
}

// Position is the per-symbol mutable position state. The extremes are only
// meaningful while the position is open.
type Position struct {
	Symbol                 string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Side                   Side      `yaml:"side" json:"side" csv:"side"`
	Size                   int       `yaml:"size" json:"size" csv:"size"`
	EntryPrice             float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	HighestPriceSinceEntry float64   `yaml:"highest_price_since_entry" json:"highest_price_since_entry" csv:"highest_price_since_entry"`
	LowestPriceSinceEntry  float64   `yaml:"lowest_price_since_entry" json:"lowest_price_since_entry" csv:"lowest_price_since_entry"`
	OpenedAt               time.Time `yaml:"opened_at" json:"opened_at" csv:"opened_at"`
}

// NewPosition returns a flat position for symbol.
func NewPosition(symbol string) *Position {
	return &Position{
		Symbol: symbol,
		Side:   SideFlat,
	}
}

// IsOpen reports whether the position carries exposure with a known entry.
func (p *Position) IsOpen() bool {
	return p.Side != SideFlat && p.Side != "" && p.Size > 0 && p.EntryPrice > 0
}

// Open moves a flat position to side at price.
func (p *Position) Open(side Side, price float64, size int, at time.Time) {
	p.Side = side
	p.Size = size
	p.EntryPrice = price
	p.HighestPriceSinceEntry = price
	p.LowestPriceSinceEntry = price
	p.OpenedAt = at
}

// Reset returns the position to FLAT and clears entry and extremes.
func (p *Position) Reset() {
	p.Side = SideFlat
	p.Size = 0
	p.EntryPrice = 0
	p.HighestPriceSinceEntry = 0
	p.LowestPriceSinceEntry = 0
	p.OpenedAt = time.Time{}
}

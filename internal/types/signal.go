package types

import "time"

// Action is the trade action carried by a Signal.
type Action string

const (
	// ActionBuy opens a long position, covering any open short first
	ActionBuy Action = "BUY"
	// ActionSellToClose closes an open long position
	ActionSellToClose Action = "SELL_TO_CLOSE"
	// ActionSellShort opens a short position, selling any open long first
	ActionSellShort Action = "SELL_SHORT"
	// ActionCoverToClose closes an open short position
	ActionCoverToClose Action = "COVER_TO_CLOSE"
	// ActionHold is a no-op
	ActionHold Action = "HOLD"
)

const (
	ReasonStopLoss           string = "stop_loss"
	ReasonTrailingTakeProfit string = "trailing_take_profit"
	ReasonNoSignal           string = "no_signal"
	ReasonNoPosition         string = "no_position"
	ReasonZeroSize           string = "zero_size"
	ReasonLowVolume          string = "low_volume"
	ReasonShortDisabled      string = "short_disabled"
)

// Signal is the decision emitted for one evaluated bar.
type Signal struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Action Action    `yaml:"action" json:"action" csv:"action"`
	Price  float64   `yaml:"price" json:"price" csv:"price"`
	Size   int       `yaml:"size" json:"size" csv:"size"`
	Reason string    `yaml:"reason" json:"reason" csv:"reason"`
}

// IsHold reports whether the signal is a no-op.
func (s Signal) IsHold() bool {
	return s.Action == ActionHold
}

// CrossType is the kind of crossover between a fast and a slow series.
type CrossType string

const (
	CrossNone   CrossType = "none"
	CrossGolden CrossType = "golden"
	CrossDeath  CrossType = "death"
)

// Opposite returns the mirrored cross type.
func (c CrossType) Opposite() CrossType {
	switch c {
	case CrossGolden:
		return CrossDeath
	case CrossDeath:
		return CrossGolden
	default:
		return CrossNone
	}
}

// CrossEvent is a crossover at a given bar index.
type CrossEvent struct {
	Index int
	Type  CrossType
}

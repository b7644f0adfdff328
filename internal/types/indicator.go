package types

// IndicatorType identifies an indicator family.
type IndicatorType string

const (
	IndicatorTypeMA             IndicatorType = "ma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeKDJ            IndicatorType = "kdj"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeBollingerBands IndicatorType = "boll"
	IndicatorTypeATR            IndicatorType = "atr"
)

package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/shopspring/decimal"
)

// DataGenerator generates synthetic OHLCV bars for tests and benchmarks.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "AAPL", "SPY")
	Symbol string
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          10000,
		InitialPrice:   100.0,
		Volatility:     0.002, // 0.2% per bar
		Trend:          0.0,   // neutral
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars following geometric Brownian motion. Every bar opens
// at the previous close; high and low extend past the body by up to half the
// volatility. Prices stay positive.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	price := config.InitialPrice
	drift := config.Trend / float64(config.Count)

	for i := range bars {
		open := price

		close := open * (1 + config.Volatility*g.normal() + drift)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) + g.rng.Float64()*config.Volatility*open*0.5

		low := math.Min(open, close) - g.rng.Float64()*config.Volatility*open*0.5
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (1 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Symbol: config.Symbol,
			Time:   config.StartTime.Add(time.Duration(i) * config.Interval),
			Open:   round(open, 4),
			High:   round(high, 4),
			Low:    round(low, 4),
			Close:  round(close, 4),
			Volume: round(volume, 2),
		}

		price = close
	}

	return bars
}

// normal draws from N(0, 1) with the Box-Muller transform.
func (g *DataGenerator) normal() float64 {
	u1 := g.rng.Float64()
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// GenerateSeries generates bars and wraps them in a BarSeries.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig) types.BarSeries {
	return types.BarSeries{
		Symbol: config.Symbol,
		Bars:   g.Generate(config),
	}
}

// BarsFromCloses builds daily bars from close prices. High and low are one
// unit around the close and volume is constant.
func BarsFromCloses(symbol string, closes ...float64) types.BarSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    math.Max(c-1, c/2),
			Close:  c,
			Volume: 1_000_000,
		}
	}

	return types.BarSeries{Symbol: symbol, Bars: bars}
}

// GenerateMultiSymbol concatenates one series per symbol. Each symbol starts
// from a price and volatility within 20% of the base config.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, 0, len(symbols)*baseConfig.Count)

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		config.InitialPrice *= 0.8 + g.rng.Float64()*0.4
		config.Volatility *= 0.8 + g.rng.Float64()*0.4

		bars = append(bars, g.Generate(config)...)
	}

	return bars
}

// Generate10K returns 10,000 one-minute bars from a fixed seed.
func Generate10K(symbol string) []types.Bar {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = 10000

	return gen.Generate(config)
}

func round(val float64, places int32) float64 {
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

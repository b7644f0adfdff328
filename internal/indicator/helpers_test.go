package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
)

func closes(values ...float64) types.BarSeries {
	return mocks.BarsFromCloses("TEST", values...)
}

func randomSeries(seed int64, count int) types.BarSeries {
	gen := mocks.NewDataGenerator(seed)
	cfg := mocks.DefaultConfig()
	cfg.Count = count
	cfg.Volatility = 0.01

	return gen.GenerateSeries(cfg)
}

func run(ind Indicator, series types.BarSeries) types.IndicatorSeries {
	engine, err := NewEngine(ind)
	if err != nil {
		panic(err)
	}

	out, err := engine.Compute(series)
	if err != nil {
		panic(err)
	}

	return out
}

func configured(ind Indicator, params ...any) Indicator {
	if err := ind.Config(params...); err != nil {
		panic(err)
	}

	return ind
}

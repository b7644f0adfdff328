package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/cross"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (suite *StrategyTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

type event struct {
	index  int
	kind   types.CrossType
	reason string
}

// replay runs the strategy over series and collects every cross.
func (suite *StrategyTestSuite) replay(s Strategy, series types.BarSeries) []event {
	engine, err := indicator.NewEngine(s.Indicators()...)
	suite.Require().NoError(err)

	stream, err := engine.NewStream()
	suite.Require().NoError(err)

	tracker := NewTracker(s)

	var events []event

	for i, bar := range series.Bars {
		snap, err := stream.Update(bar)
		suite.Require().NoError(err)

		if kind, reason := tracker.Update(snap); kind != types.CrossNone {
			events = append(events, event{index: i, kind: kind, reason: reason})
		}
	}

	return events
}

func (suite *StrategyTestSuite) newStrategy(mutate func(cfg *config.Config)) Strategy {
	cfg := config.Default()
	mutate(&cfg)

	s, err := suite.registry.New(cfg)
	suite.Require().NoError(err)

	return s
}

func (suite *StrategyTestSuite) TestDualMADeathCross() {
	s := suite.newStrategy(func(cfg *config.Config) {
		cfg.Strategy.FastWindow = 5
		cfg.Strategy.SlowWindow = 10
	})
	suite.Equal(NameDualMA, s.Name())

	series := mocks.BarsFromCloses("TEST", 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 9, 8)
	suite.Equal([]event{{10, types.CrossDeath, ReasonMACrossDown}}, suite.replay(s, series))
}

func (suite *StrategyTestSuite) TestDualMAGoldenCross() {
	s := suite.newStrategy(func(cfg *config.Config) {
		cfg.Strategy.FastWindow = 5
		cfg.Strategy.SlowWindow = 10
	})

	series := mocks.BarsFromCloses("TEST", 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 11, 12)
	suite.Equal([]event{{10, types.CrossGolden, ReasonMACrossUp}}, suite.replay(s, series))
}

func (suite *StrategyTestSuite) TestDualMARejectsInvertedWindows() {
	cfg := config.Default()
	cfg.Strategy.FastWindow = 20
	cfg.Strategy.SlowWindow = 5

	_, err := suite.registry.New(cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *StrategyTestSuite) TestMACDMatchesHistogramSignFlips() {
	s := suite.newStrategy(func(cfg *config.Config) {
		cfg.Strategy.Name = NameMACD
	})
	suite.Equal(NameMACD, s.Name())

	gen := mocks.NewDataGenerator(13)
	gcfg := mocks.DefaultConfig()
	gcfg.Count = 400
	gcfg.Volatility = 0.01
	series := gen.GenerateSeries(gcfg)

	engine, err := indicator.NewEngine(s.Indicators()...)
	suite.Require().NoError(err)

	out, err := engine.Compute(series)
	suite.Require().NoError(err)

	expected, err := cross.Detect(out[indicator.ColumnMACDDif], out[indicator.ColumnMACDDea])
	suite.Require().NoError(err)
	suite.NotEmpty(expected)

	events := suite.replay(s, series)
	suite.Require().Len(events, len(expected))

	for i, e := range events {
		suite.Equal(expected[i].Index, e.index)
		suite.Equal(expected[i].Type, e.kind)

		if e.kind == types.CrossGolden {
			suite.Equal(ReasonMACDCrossUp, e.reason)
		} else {
			suite.Equal(ReasonMACDCrossDown, e.reason)
		}
	}
}

func (suite *StrategyTestSuite) TestRSIThresholdCrosses() {
	s := suite.newStrategy(func(cfg *config.Config) {
		cfg.Strategy.Name = NameRSI
		cfg.Strategy.RSIPeriod = 3
		cfg.Strategy.Oversold = 30
		cfg.Strategy.Overbought = 70
	})
	suite.Equal(NameRSI, s.Name())

	series := mocks.BarsFromCloses("TEST", 10, 9, 8, 7, 8, 9, 10, 11, 11, 10)
	suite.Equal([]event{
		{4, types.CrossGolden, ReasonRSIOversoldExit},
		{9, types.CrossDeath, ReasonRSIOverboughtExit},
	}, suite.replay(s, series))
}

func (suite *StrategyTestSuite) TestRSIRejectsInvertedThresholds() {
	cfg := config.Default()
	cfg.Strategy.Name = NameRSI
	cfg.Strategy.Oversold = 80
	cfg.Strategy.Overbought = 20

	_, err := suite.registry.New(cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *StrategyTestSuite) TestRegistry() {
	suite.Equal([]string{NameDualMA, NameMACD, NameRSI}, suite.registry.Names())

	cfg := config.Default()
	cfg.Strategy.Name = "grid"

	_, err := suite.registry.New(cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))

	err = suite.registry.Register(NameMACD, NewMACD)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	suite.NoError(suite.registry.Register("grid", NewDualMA))

	s, err := suite.registry.New(cfg)
	suite.NoError(err)
	suite.Equal(NameDualMA, s.Name())
}

func (suite *StrategyTestSuite) TestTrackerIgnoresUndefined() {
	s := suite.newStrategy(func(cfg *config.Config) {})
	tracker := NewTracker(s)

	kind, reason := tracker.Update(types.IndicatorSnapshot{})
	suite.Equal(types.CrossNone, kind)
	suite.Empty(reason)
}

package policy

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/risk"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const capital = 10000.0

type PolicyTestSuite struct {
	suite.Suite
	manager *risk.Manager
	at      time.Time
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicyTestSuite))
}

func (suite *PolicyTestSuite) SetupTest() {
	manager, err := risk.NewManager(config.Default().Risk)
	suite.Require().NoError(err)

	suite.manager = manager
	suite.at = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PolicyTestSuite) policy(allowShort bool, volumeThreshold float64) *Policy {
	cfg := config.Default().Strategy
	cfg.AllowShort = allowShort
	cfg.VolumeThreshold = volumeThreshold

	p, err := NewPolicy(suite.manager, cfg)
	suite.Require().NoError(err)

	return p
}

// bar closes at 100 with a narrow range. Default risk sizes 40 units with
// the test capital.
func (suite *PolicyTestSuite) bar(volume float64) types.Bar {
	return types.Bar{
		Symbol: "MSFT",
		Time:   suite.at,
		Open:   100,
		High:   101,
		Low:    99,
		Close:  100,
		Volume: volume,
	}
}

func (suite *PolicyTestSuite) position(side types.Side, size int) *types.Position {
	pos := types.NewPosition("MSFT")
	if side != types.SideFlat {
		pos.Open(side, 100, size, suite.at.AddDate(0, 0, -1))
	}

	return pos
}

func (suite *PolicyTestSuite) TestNewPolicyValidation() {
	_, err := NewPolicy(nil, config.Default().Strategy)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	cfg := config.Default().Strategy
	cfg.VolumeThreshold = -1
	_, err = NewPolicy(suite.manager, cfg)
	suite.True(errors.IsInvalidInput(err))

	for _, capital := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		cfg := config.Default().Strategy
		cfg.Capital = capital

		_, err := NewPolicy(suite.manager, cfg)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter), "capital %v", capital)
	}
}

func (suite *PolicyTestSuite) TestSignalCarriesBarFields() {
	signal, err := suite.policy(false, 0).Evaluate(suite.position(types.SideFlat, 0), suite.bar(1000), types.CrossNone, "", capital)
	suite.NoError(err)
	suite.Equal("MSFT", signal.Symbol)
	suite.Equal(suite.at, signal.Time)
	suite.Equal(100.0, signal.Price)
	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(types.ReasonNoSignal, signal.Reason)
	suite.True(signal.IsHold())
}

func (suite *PolicyTestSuite) TestDecisionTable() {
	tests := []struct {
		name       string
		side       types.Side
		size       int
		cross      types.CrossType
		allowShort bool
		volume     float64
		action     types.Action
		signalSize int
		reason     string
	}{
		{"golden flat", types.SideFlat, 0, types.CrossGolden, false, 1000, types.ActionBuy, 40, "cross_up"},
		{"golden short reverses", types.SideShort, 7, types.CrossGolden, false, 1000, types.ActionBuy, 47, "cross_up"},
		{"golden long holds", types.SideLong, 7, types.CrossGolden, false, 1000, types.ActionHold, 0, types.ReasonNoSignal},
		{"golden flat low volume", types.SideFlat, 0, types.CrossGolden, false, 10, types.ActionHold, 0, types.ReasonLowVolume},
		{"golden short low volume covers", types.SideShort, 7, types.CrossGolden, false, 10, types.ActionCoverToClose, 7, "cross_up"},
		{"death long closes", types.SideLong, 7, types.CrossDeath, false, 1000, types.ActionSellToClose, 7, "cross_down"},
		{"death long reverses", types.SideLong, 7, types.CrossDeath, true, 1000, types.ActionSellShort, 47, "cross_down"},
		{"death long low volume closes", types.SideLong, 7, types.CrossDeath, true, 10, types.ActionSellToClose, 7, "cross_down"},
		{"death flat without shorts", types.SideFlat, 0, types.CrossDeath, false, 1000, types.ActionHold, 0, types.ReasonShortDisabled},
		{"death flat opens short", types.SideFlat, 0, types.CrossDeath, true, 1000, types.ActionSellShort, 40, "cross_down"},
		{"death flat low volume", types.SideFlat, 0, types.CrossDeath, true, 10, types.ActionHold, 0, types.ReasonLowVolume},
		{"death short holds", types.SideShort, 7, types.CrossDeath, true, 1000, types.ActionHold, 0, types.ReasonNoSignal},
		{"no cross", types.SideLong, 7, types.CrossNone, true, 1000, types.ActionHold, 0, types.ReasonNoSignal},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			reason := "cross_up"
			if tt.cross == types.CrossDeath {
				reason = "cross_down"
			}

			signal, err := suite.policy(tt.allowShort, 100).Evaluate(suite.position(tt.side, tt.size), suite.bar(tt.volume), tt.cross, reason, capital)
			suite.NoError(err)
			suite.Equal(tt.action, signal.Action)
			suite.Equal(tt.signalSize, signal.Size)
			suite.Equal(tt.reason, signal.Reason)
		})
	}
}

func (suite *PolicyTestSuite) TestForcedExitTakesPrecedence() {
	pos := suite.position(types.SideLong, 12)
	bar := suite.bar(1000)
	bar.Close = 94
	bar.Low = 93

	signal, err := suite.policy(true, 0).Evaluate(pos, bar, types.CrossGolden, "cross_up", capital)
	suite.NoError(err)
	suite.Equal(types.ActionSellToClose, signal.Action)
	suite.Equal(12, signal.Size)
	suite.Equal(types.ReasonStopLoss, signal.Reason)
	suite.Equal(types.SideFlat, pos.Side)
}

func (suite *PolicyTestSuite) TestForcedShortExitCovers() {
	pos := suite.position(types.SideShort, 3)
	bar := suite.bar(1000)
	bar.Close = 106
	bar.High = 107

	signal, err := suite.policy(true, 0).Evaluate(pos, bar, types.CrossDeath, "cross_down", capital)
	suite.NoError(err)
	suite.Equal(types.ActionCoverToClose, signal.Action)
	suite.Equal(3, signal.Size)
	suite.Equal(types.ReasonStopLoss, signal.Reason)
}

func (suite *PolicyTestSuite) TestExitsIgnoreVolumeFilter() {
	pos := suite.position(types.SideLong, 5)
	bar := suite.bar(0)
	bar.Close = 90
	bar.Low = 89

	signal, err := suite.policy(false, 1e9).Evaluate(pos, bar, types.CrossNone, "", capital)
	suite.NoError(err)
	suite.Equal(types.ActionSellToClose, signal.Action)
}

func (suite *PolicyTestSuite) TestZeroSizeEntry() {
	signal, err := suite.policy(false, 0).Evaluate(suite.position(types.SideFlat, 0), suite.bar(1000), types.CrossGolden, "cross_up", 1)
	suite.NoError(err)
	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(types.ReasonZeroSize, signal.Reason)
}

func (suite *PolicyTestSuite) TestInvalidCapital() {
	_, err := suite.policy(false, 0).Evaluate(suite.position(types.SideFlat, 0), suite.bar(1000), types.CrossGolden, "cross_up", -5)
	suite.True(errors.IsInvalidInput(err))
}

func (suite *PolicyTestSuite) TestInvalidBar() {
	bar := suite.bar(1000)
	bar.Close = 0

	_, err := suite.policy(false, 0).Evaluate(suite.position(types.SideFlat, 0), bar, types.CrossNone, "", capital)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
}

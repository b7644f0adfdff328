package risk

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

func (suite *RiskTestSuite) fill(side types.FillSide, price float64, size int) types.Fill {
	return types.Fill{
		Symbol: "AAPL",
		Time:   suite.start,
		Side:   side,
		Price:  price,
		Size:   size,
	}
}

func (suite *RiskTestSuite) TestFillOpensFlatPosition() {
	pos := types.NewPosition("AAPL")

	pnl, err := suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 50, 10))
	suite.NoError(err)
	suite.Equal(0.0, pnl)
	suite.Equal(types.SideLong, pos.Side)
	suite.Equal(10, pos.Size)
	suite.Equal(50.0, pos.EntryPrice)
	suite.Equal(50.0, pos.HighestPriceSinceEntry)
	suite.Equal(50.0, pos.LowestPriceSinceEntry)

	short := types.NewPosition("AAPL")
	_, err = suite.manager.ApplyFill(short, suite.fill(types.FillSideSell, 50, 4))
	suite.NoError(err)
	suite.Equal(types.SideShort, short.Side)
}

func (suite *RiskTestSuite) TestFillAveragesEntry() {
	pos := suite.long(100, 10)

	_, err := suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 110, 30))
	suite.NoError(err)
	suite.Equal(40, pos.Size)
	suite.InDelta(107.5, pos.EntryPrice, 1e-12)
	suite.Equal(110.0, pos.HighestPriceSinceEntry)
	suite.Equal(100.0, pos.LowestPriceSinceEntry)
}

func (suite *RiskTestSuite) TestPartialCloseRealizesPnL() {
	pos := suite.long(100, 10)

	reduce := suite.fill(types.FillSideSell, 112, 4)
	reduce.ReduceOnly = true

	pnl, err := suite.manager.ApplyFill(pos, reduce)
	suite.NoError(err)
	suite.InDelta(48.0, pnl, 1e-12)
	suite.Equal(6, pos.Size)
	suite.Equal(100.0, pos.EntryPrice)
	suite.Equal(types.SideLong, pos.Side)
}

func (suite *RiskTestSuite) TestFullCloseResetsToFlat() {
	pos := suite.short(100, 5)

	pnl, err := suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 90, 5))
	suite.NoError(err)
	suite.InDelta(50.0, pnl, 1e-12)
	suite.Equal(types.SideFlat, pos.Side)
	suite.Equal(0.0, pos.EntryPrice)
	suite.Equal(0.0, pos.LowestPriceSinceEntry)
}

func (suite *RiskTestSuite) TestOversizedFillReverses() {
	pos := suite.short(100, 5)

	pnl, err := suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 104, 8))
	suite.NoError(err)
	suite.InDelta(-20.0, pnl, 1e-12)
	suite.Equal(types.SideLong, pos.Side)
	suite.Equal(3, pos.Size)
	suite.Equal(104.0, pos.EntryPrice)
	suite.Equal(104.0, pos.HighestPriceSinceEntry)
}

func (suite *RiskTestSuite) TestOversizedReduceOnlyFillIsRejected() {
	pos := suite.long(100, 5)

	fill := suite.fill(types.FillSideSell, 100, 6)
	fill.ReduceOnly = true

	_, err := suite.manager.ApplyFill(pos, fill)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSize))
	suite.Equal(5, pos.Size)
}

func (suite *RiskTestSuite) TestReduceOnlyFillAfterForcedExitIsNoOp() {
	pos := suite.long(100, 10)

	decision, err := suite.manager.Evaluate(pos, suite.bar(1, 100, 90, 94))
	suite.Require().NoError(err)
	suite.Require().True(decision.Exit)

	fill := suite.fill(types.FillSideSell, 94, decision.Size)
	fill.ReduceOnly = true

	pnl, err := suite.manager.ApplyFill(pos, fill)
	suite.NoError(err)
	suite.Equal(0.0, pnl)
	suite.Equal(types.SideFlat, pos.Side)
}

func (suite *RiskTestSuite) TestReduceOnlyFillInSameDirection() {
	pos := suite.long(100, 10)

	fill := suite.fill(types.FillSideBuy, 100, 1)
	fill.ReduceOnly = true

	_, err := suite.manager.ApplyFill(pos, fill)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidFill))
}

func (suite *RiskTestSuite) TestInvalidFill() {
	pos := types.NewPosition("AAPL")

	_, err := suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 0, 1))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidFill))

	_, err = suite.manager.ApplyFill(pos, suite.fill(types.FillSideBuy, 10, -1))
	suite.True(errors.IsInvalidInput(err))

	_, err = suite.manager.ApplyFill(nil, suite.fill(types.FillSideBuy, 10, 1))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	suite.Equal(types.SideFlat, pos.Side)
}

package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestNewMACD() {
	macd := NewMACD()
	suite.Equal(types.IndicatorTypeMACD, macd.Name())
	suite.Equal("macd", macd.Key())
	suite.Equal([]string{ColumnMACDDif, ColumnMACDDea, ColumnMACDHist}, macd.Columns())
}

func (suite *MACDTestSuite) TestConfig() {
	macd := NewMACD()
	suite.NoError(macd.Config(6, 13, 5))

	suite.True(errors.HasCode(macd.Config(12, 26), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(macd.Config(12, "slow", 9), errors.ErrCodeInvalidType))
	suite.True(errors.HasCode(macd.Config(12, 26, -1), errors.ErrCodeInvalidPeriod))
}

func (suite *MACDTestSuite) TestHistogramIsTwiceDifference() {
	series := randomSeries(11, 200)
	out := run(NewMACD(), series)

	for i := 0; i < series.Len(); i++ {
		dif, ok := out[ColumnMACDDif].Value(i)
		suite.True(ok)

		dea, ok := out[ColumnMACDDea].Value(i)
		suite.True(ok)

		hist, ok := out[ColumnMACDHist].Value(i)
		suite.True(ok)

		suite.InDelta(2*(dif-dea), hist, 1e-12)
	}
}

func (suite *MACDTestSuite) TestMatchesEMAColumns() {
	series := randomSeries(12, 120)

	engine, err := NewEngine(NewMACD(), configured(NewEMA(), 12), configured(NewEMA(), 26))
	suite.Require().NoError(err)

	out, err := engine.Compute(series)
	suite.Require().NoError(err)

	for i := 0; i < series.Len(); i++ {
		fast, _ := out["ema12"].Value(i)
		slow, _ := out["ema26"].Value(i)
		dif, _ := out[ColumnMACDDif].Value(i)
		suite.InDelta(fast-slow, dif, 1e-9)
	}
}

func (suite *MACDTestSuite) TestFirstBarIsZero() {
	out := run(NewMACD(), closes(100, 101))

	dif, _ := out[ColumnMACDDif].Value(0)
	dea, _ := out[ColumnMACDDea].Value(0)
	hist, _ := out[ColumnMACDHist].Value(0)

	suite.Equal(0.0, dif)
	suite.Equal(0.0, dea)
	suite.Equal(0.0, hist)
}

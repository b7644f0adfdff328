package types

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestDefinedAndValue() {
	s := Series{optional.None[float64](), optional.Some(2.5)}

	suite.False(s.Defined(0))
	suite.True(s.Defined(1))
	suite.False(s.Defined(2))
	suite.False(s.Defined(-1))

	_, ok := s.Value(0)
	suite.False(ok)

	v, ok := s.Value(1)
	suite.True(ok)
	suite.Equal(2.5, v)

	suite.Equal(1, s.FirstDefined())
	suite.Equal(-1, Series{optional.None[float64]()}.FirstDefined())
	suite.True(Series{}.Last().IsNone())
	suite.Equal(2.5, s.Last().Unwrap())
}

func (suite *SeriesTestSuite) TestFloats() {
	s := Series{optional.None[float64](), optional.Some(1.0)}
	out := s.Floats()

	suite.True(math.IsNaN(out[0]))
	suite.Equal(1.0, out[1])
}

func (suite *SeriesTestSuite) TestSnapshot() {
	is := IndicatorSeries{
		"ma5":  Series{optional.None[float64](), optional.Some(10.0)},
		"rsi6": Series{optional.Some(55.0), optional.Some(60.0)},
	}

	suite.Equal([]string{"ma5", "rsi6"}, is.Columns())

	snap := is.Snapshot(0)
	_, err := snap.Float("ma5")
	suite.True(errors.IsInsufficientDataError(err))

	v, err := snap.Float("rsi6")
	suite.NoError(err)
	suite.Equal(55.0, v)

	_, err = snap.Float("kdj_k")
	suite.True(errors.HasCode(err, errors.ErrCodeColumnNotFound))
	suite.True(snap.Get("kdj_k").IsNone())

	outOfRange := is.Snapshot(5)
	suite.True(outOfRange.Get("ma5").IsNone())
}

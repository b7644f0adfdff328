package risk

import (
	"math"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

func (suite *RiskTestSuite) TestCalculatePosition() {
	tests := []struct {
		name     string
		capital  float64
		price    float64
		expected int
	}{
		// 100000 * 2% / (100 * 5%) = 400, capped at 100
		{"capped", 100000, 100, 100},
		// 10000 * 2% / (100 * 5%) = 40
		{"exact ratio", 10000, 100, 40},
		// 10000 * 2% / (30 * 5%) = 133.33, capped
		{"fraction capped", 10000, 30, 100},
		// 1000 * 2% / (7 * 5%) = 57.14
		{"floored", 1000, 7, 57},
		{"zero capital", 0, 10, 0},
		// 10 * 2% / (100 * 5%) = 0.04
		{"too small", 10, 100, 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			size, err := suite.manager.CalculatePosition(tt.capital, tt.price)
			suite.NoError(err)
			suite.Equal(tt.expected, size)
		})
	}
}

func (suite *RiskTestSuite) TestCalculatePositionRejectsInvalidInput() {
	_, err := suite.manager.CalculatePosition(1000, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))

	_, err = suite.manager.CalculatePosition(1000, -3)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))

	_, err = suite.manager.CalculatePosition(1000, math.NaN())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))

	_, err = suite.manager.CalculatePosition(-1, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = PositionSize(1000, 10, 2, 0, 100)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPercent))
	suite.True(errors.IsInvalidInput(err))
}

func (suite *RiskTestSuite) TestPositionSizeWithoutCap() {
	size, err := PositionSize(100000, 100, 2, 5, 0)
	suite.NoError(err)
	suite.Equal(400, size)
}

package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	ColumnKDJK = "kdj_k"
	ColumnKDJD = "kdj_d"
	ColumnKDJJ = "kdj_j"
)

// KDJ is the stochastic oscillator with a J line.
//
//	rsv = (close - lowest low) / (highest high - lowest low) * 100, over n bars
//	K   = EMA(rsv, alpha=1/m1), seeded at the first defined rsv
//	D   = EMA(K, alpha=1/m2)
//	J   = 3K - 2D
//
// rsv is undefined for a flat window. Once K is seeded, such a bar carries
// K forward unchanged and D smooths toward it.
type KDJ struct {
	n  int
	m1 int
	m2 int
}

// NewKDJ creates a new KDJ indicator with default configuration (9, 3, 3).
func NewKDJ() Indicator {
	return &KDJ{
		n:  9,
		m1: 3,
		m2: 3,
	}
}

// Name returns the name of the indicator.
func (k *KDJ) Name() types.IndicatorType {
	return types.IndicatorTypeKDJ
}

// Key implements Indicator.
func (k *KDJ) Key() string {
	return string(k.Name())
}

// Config configures the KDJ indicator. Expected parameters: n (int), m1 (int), m2 (int).
func (k *KDJ) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: n (int), m1 (int), m2 (int)")
	}

	n, err := intParam("n", params[0])
	if err != nil {
		return err
	}

	m1, err := intParam("m1", params[1])
	if err != nil {
		return err
	}

	m2, err := intParam("m2", params[2])
	if err != nil {
		return err
	}

	k.n = n
	k.m1 = m1
	k.m2 = m2

	return nil
}

// Columns implements Indicator.
func (k *KDJ) Columns() []string {
	return []string{ColumnKDJK, ColumnKDJD, ColumnKDJJ}
}

// WarmUp implements Indicator.
func (k *KDJ) WarmUp() int {
	return k.n
}

// NewCalculator implements Indicator.
func (k *KDJ) NewCalculator() Calculator {
	return &kdjCalculator{
		highs: newWindow(k.n),
		lows:  newWindow(k.n),
		k:     newAlphaSmoother(k.m1),
		d:     newAlphaSmoother(k.m2),
	}
}

type kdjCalculator struct {
	highs *window
	lows  *window
	k     *smoother
	d     *smoother
}

func (c *kdjCalculator) Update(bar types.Bar) []optional.Option[float64] {
	c.highs.push(bar.High)
	c.lows.push(bar.Low)

	if !c.highs.full() {
		return []optional.Option[float64]{none(), none(), none()}
	}

	lowest := c.lows.min()
	span := c.highs.max() - lowest

	if span == 0 {
		if !c.k.seeded {
			return []optional.Option[float64]{none(), none(), none()}
		}

		// K holds its value; D keeps smoothing toward it.
		k := c.k.value
		d := c.d.update(k)

		return []optional.Option[float64]{some(k), some(d), some(3*k - 2*d)}
	}

	rsv := (bar.Close - lowest) / span * 100
	k := c.k.update(rsv)
	d := c.d.update(k)

	return []optional.Option[float64]{some(k), some(d), some(3*k - 2*d)}
}

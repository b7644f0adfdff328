package indicator

import (
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/spf13/cast"
)

// intParam converts a positional config parameter to a positive int.
func intParam(name string, value any) (int, error) {
	v, err := cast.ToIntE(value)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidType, err, "invalid type for %s parameter, expected int", name)
	}

	if v <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, v)
	}

	return v, nil
}

// floatParam converts a positional config parameter to a positive float.
func floatParam(name string, value any) (float64, error) {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidType, err, "invalid type for %s parameter, expected float", name)
	}

	if v <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "%s must be a positive number, got %f", name, v)
	}

	return v, nil
}

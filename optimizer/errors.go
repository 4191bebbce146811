package optimizer

import "github.com/pkg/errors"

// NewOptimizerFailedError is returned when the retry budget is exhausted and
// no feasible control sequence could be found.
func NewOptimizerFailedError() error {
	return errors.New("optimizer failed to compute path")
}

// NewControllerPeriodError is returned when the controller period exceeds the
// model timestep, which would leave gaps in the executed control sequence.
func NewControllerPeriodError(period, modelDT float64) error {
	return errors.Errorf("controller period %.4fs is greater than model_dt %.4fs, set them equal", period, modelDT)
}

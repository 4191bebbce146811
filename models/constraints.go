package models

// Constraints are symmetric velocity bounds applied to sampled controls.
type Constraints struct {
	VX float64
	VY float64
	WZ float64
}

// SamplingStd holds the per-axis standard deviations used when sampling
// control perturbations.
type SamplingStd struct {
	VX float64
	VY float64
	WZ float64
}

// OptimizerSettings is the immutable-per-tick configuration of the optimizer.
type OptimizerSettings struct {
	ModelDT              float64
	TimeSteps            int
	BatchSize            int
	IterationCount       int
	Temperature          float64
	BaseConstraints      Constraints
	Constraints          Constraints
	SamplingStd          SamplingStd
	RetryAttemptLimit    int
	ShiftControlSequence bool
	ControllerFrequency  float64
	Seed                 uint64
}

package critics

// Config carries the knobs a critic may consume. Every critic uses Enabled,
// Weight, and Power; the remaining fields apply to specific critics and are
// ignored by the rest.
type Config struct {
	Enabled bool
	Weight  float64
	Power   float64

	// ObstaclesCritic
	CollisionCost float64

	// ThresholdToConsider: PathAlignCritic, PathAngleCritic.
	// OffsetFromFurthest: PathAlignCritic, PathAngleCritic, PathFollowCritic.
	// TrajectoryPointStep: PathAlignCritic.
	ThresholdToConsider float64
	OffsetFromFurthest  int
	TrajectoryPointStep int

	// PathAngleCritic: gate angle in radians.
	MaxAngleToFurthest float64

	// PathFollowCritic
	MaxPathRatio float64

	// ConstraintCritic: soft reverse bound, negative for reverse-capable
	// platforms.
	VXMin float64
}

// DefaultConfig returns the stock configuration for the named critic.
// Unknown names get the common defaults with the critic disabled.
func DefaultConfig(name string) Config {
	cfg := Config{
		Enabled:             true,
		Weight:              1.0,
		Power:               1.0,
		CollisionCost:       2000.0,
		ThresholdToConsider: 0.40,
		OffsetFromFurthest:  20,
		TrajectoryPointStep: 5,
		MaxAngleToFurthest:  1.2,
		MaxPathRatio:        0.40,
		VXMin:               -0.35,
	}
	switch name {
	case GoalCriticName:
		cfg.Weight = 5.0
	case GoalAngleCriticName:
		cfg.Weight = 3.0
	case ObstaclesCriticName:
		cfg.Weight = 1.25
		cfg.Power = 2.0
	case PathAlignCriticName:
		cfg.Weight = 1.0
	case ApproxReferenceTrajectoryCriticName:
		cfg.Weight = 1.0
		cfg.Enabled = false
	case PathAngleCriticName:
		cfg.Weight = 2.0
	case PathFollowCriticName:
		cfg.Weight = 3.0
		cfg.OffsetFromFurthest = 10
	case PreferForwardCriticName:
		cfg.Weight = 3.0
	case TwirlingCriticName:
		cfg.Weight = 10.0
		cfg.Enabled = false
	case ConstraintCriticName:
		cfg.Weight = 4.0
	case SmootherCriticName:
		cfg.Weight = 2.0
		cfg.Enabled = false
	default:
		cfg.Enabled = false
	}
	return cfg
}

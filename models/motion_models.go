package models

import (
	"math"

	"github.com/pkg/errors"
)

// Motion model names accepted by MotionModelFromName.
const (
	DiffDriveModelName = "DiffDrive"
	OmniModelName      = "Omni"
	AckermannModelName = "Ackermann"
)

// MotionModel predicts realized velocities from commanded controls and
// applies model-specific constraints. The set of models is closed: diff
// drive, omni, and Ackermann.
type MotionModel interface {
	// IsHolonomic reports whether the model permits lateral velocity.
	IsHolonomic() bool
	// Predict writes the realized-velocity slice of next from the control
	// slice of prev, both dim-length state rows.
	Predict(prev, next []float64, idx *StateIdx)
	// ApplyConstraints post-clips the control columns of the state with any
	// model-specific bound.
	ApplyConstraints(state *State)
}

// predictFromControls is the shared predictor: sampled controls become the
// commanded velocities of the following step directly.
func predictFromControls(prev, next []float64, idx *StateIdx) {
	next[idx.VX()] = prev[idx.CVX()]
	next[idx.WZ()] = prev[idx.CWZ()]
	if idx.IsHolonomic() {
		next[idx.VY()] = prev[idx.CVY()]
	}
}

// DiffDriveModel is a differential-drive platform: no lateral motion.
type DiffDriveModel struct{}

// IsHolonomic returns false.
func (DiffDriveModel) IsHolonomic() bool { return false }

// Predict copies the previous step's controls into the next step's velocities.
func (DiffDriveModel) Predict(prev, next []float64, idx *StateIdx) {
	predictFromControls(prev, next, idx)
}

// ApplyConstraints is a no-op for diff drive.
func (DiffDriveModel) ApplyConstraints(*State) {}

// OmniModel is an omnidirectional platform with independent lateral control.
type OmniModel struct{}

// IsHolonomic returns true.
func (OmniModel) IsHolonomic() bool { return true }

// Predict copies the previous step's controls into the next step's velocities.
func (OmniModel) Predict(prev, next []float64, idx *StateIdx) {
	predictFromControls(prev, next, idx)
}

// ApplyConstraints is a no-op for omni.
func (OmniModel) ApplyConstraints(*State) {}

// AckermannModel is a car-like platform with a minimum turning radius.
type AckermannModel struct {
	MinTurningRadius float64
}

// IsHolonomic returns false.
func (AckermannModel) IsHolonomic() bool { return false }

// Predict copies the previous step's controls into the next step's velocities.
func (AckermannModel) Predict(prev, next []float64, idx *StateIdx) {
	predictFromControls(prev, next, idx)
}

// ApplyConstraints clamps commanded wz elementwise so that
// |wz| <= |vx| / min_turning_radius.
func (m AckermannModel) ApplyConstraints(state *State) {
	if m.MinTurningRadius <= 0 {
		return
	}
	batch, steps, _ := state.Data.Shape()
	cvx, cwz := state.Idx.CVX(), state.Idx.CWZ()
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			row := state.Data.Row(b, t)
			bound := math.Abs(row[cvx]) / m.MinTurningRadius
			if row[cwz] > bound {
				row[cwz] = bound
			} else if row[cwz] < -bound {
				row[cwz] = -bound
			}
		}
	}
}

// MotionModelFromName constructs the named motion model. minTurningRadius is
// only consulted for Ackermann.
func MotionModelFromName(name string, minTurningRadius float64) (MotionModel, error) {
	switch name {
	case DiffDriveModelName:
		return DiffDriveModel{}, nil
	case OmniModelName:
		return OmniModel{}, nil
	case AckermannModelName:
		return AckermannModel{MinTurningRadius: minTurningRadius}, nil
	default:
		return nil, errors.Errorf("motion model %q is not valid, valid options are %s, %s, or %s",
			name, DiffDriveModelName, OmniModelName, AckermannModelName)
	}
}

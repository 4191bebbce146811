package models

// StateIdx maps the named column slices of the state tensor to concrete
// column indices. The layout depends on whether the motion model is
// holonomic, which adds the cvy/vy columns.
type StateIdx struct {
	holonomic bool

	cvx, cvy, cwz int
	vx, vy, wz    int
	dt            int
	dim           int
}

// SetLayout recomputes column indices for the given holonomy flag. Controls
// occupy [CBegin, CEnd), realized velocities [VBegin, VEnd), and the per-step
// interval sits in the last column.
func (idx *StateIdx) SetLayout(holonomic bool) {
	idx.holonomic = holonomic
	if holonomic {
		idx.cvx, idx.cvy, idx.cwz = 0, 1, 2
		idx.vx, idx.vy, idx.wz = 3, 4, 5
		idx.dt = 6
		idx.dim = 7
		return
	}
	idx.cvx, idx.cwz = 0, 1
	idx.vx, idx.wz = 2, 3
	idx.cvy, idx.vy = -1, -1
	idx.dt = 4
	idx.dim = 5
}

// IsHolonomic reports whether the layout includes lateral velocity columns.
func (idx *StateIdx) IsHolonomic() bool { return idx.holonomic }

// CVX returns the commanded-vx column.
func (idx *StateIdx) CVX() int { return idx.cvx }

// CVY returns the commanded-vy column, -1 when non-holonomic.
func (idx *StateIdx) CVY() int { return idx.cvy }

// CWZ returns the commanded-wz column.
func (idx *StateIdx) CWZ() int { return idx.cwz }

// VX returns the realized-vx column.
func (idx *StateIdx) VX() int { return idx.vx }

// VY returns the realized-vy column, -1 when non-holonomic.
func (idx *StateIdx) VY() int { return idx.vy }

// WZ returns the realized-wz column.
func (idx *StateIdx) WZ() int { return idx.wz }

// DT returns the time-interval column.
func (idx *StateIdx) DT() int { return idx.dt }

// CBegin returns the first control column.
func (idx *StateIdx) CBegin() int { return idx.cvx }

// CEnd returns one past the last control column.
func (idx *StateIdx) CEnd() int { return idx.vx }

// VBegin returns the first realized-velocity column.
func (idx *StateIdx) VBegin() int { return idx.vx }

// VEnd returns one past the last realized-velocity column.
func (idx *StateIdx) VEnd() int { return idx.dt }

// ControlDim returns the number of control columns (2 or 3).
func (idx *StateIdx) ControlDim() int { return idx.vx - idx.cvx }

// Dim returns the total column count of the state tensor.
func (idx *StateIdx) Dim() int { return idx.dim }

// State is the dense (batch, steps, dim) rollout scratchpad: commanded
// controls, realized velocities, and time intervals, partitioned into named
// column slices by Idx. Pose and Speed are the measured robot state staged
// for the current tick.
type State struct {
	Data  *Tensor
	Idx   StateIdx
	Pose  PoseStamped
	Speed Twist
}

// Reset reallocates the tensor to (batch, steps) with the current layout.
func (s *State) Reset(batch, steps int) {
	s.Data = NewTensor(batch, steps, s.Idx.Dim())
}

package models

import "gonum.org/v1/gonum/mat"

// ControlIdx maps control-sequence columns for the active holonomy layout.
type ControlIdx struct {
	holonomic  bool
	vx, vy, wz int
	dim        int
}

// SetLayout recomputes column indices for the given holonomy flag.
func (idx *ControlIdx) SetLayout(holonomic bool) {
	idx.holonomic = holonomic
	if holonomic {
		idx.vx, idx.vy, idx.wz = 0, 1, 2
		idx.dim = 3
		return
	}
	idx.vx, idx.wz = 0, 1
	idx.vy = -1
	idx.dim = 2
}

// VX returns the vx column.
func (idx *ControlIdx) VX() int { return idx.vx }

// VY returns the vy column, -1 when non-holonomic.
func (idx *ControlIdx) VY() int { return idx.vy }

// WZ returns the wz column.
func (idx *ControlIdx) WZ() int { return idx.wz }

// Dim returns the control column count (2 or 3).
func (idx *ControlIdx) Dim() int { return idx.dim }

// IsHolonomic reports whether the layout includes a vy column.
func (idx *ControlIdx) IsHolonomic() bool { return idx.holonomic }

// ControlSequence is the warm-started nominal control sequence, a (steps,
// controlDim) matrix kept across ticks and refined by the softmax update.
type ControlSequence struct {
	Data *mat.Dense
	Idx  ControlIdx
}

// Reset zero-reallocates the sequence for the given horizon with the current
// layout.
func (c *ControlSequence) Reset(steps int) {
	c.Data = mat.NewDense(steps, c.Idx.Dim(), nil)
}

// Shift rolls the sequence one step toward the present and duplicates the
// final row, so the sequence's time axis tracks wall time between ticks.
func (c *ControlSequence) Shift() {
	rows, cols := c.Data.Dims()
	for t := 0; t < rows-1; t++ {
		for j := 0; j < cols; j++ {
			c.Data.Set(t, j, c.Data.At(t+1, j))
		}
	}
	for j := 0; j < cols; j++ {
		c.Data.Set(rows-1, j, c.Data.At(rows-2, j))
	}
}

// ControlAt returns row t of the sequence as a Control.
func (c *ControlSequence) ControlAt(t int) Control {
	ctrl := Control{
		VX: c.Data.At(t, c.Idx.VX()),
		WZ: c.Data.At(t, c.Idx.WZ()),
	}
	if c.Idx.IsHolonomic() {
		ctrl.VY = c.Data.At(t, c.Idx.VY())
	}
	return ctrl
}

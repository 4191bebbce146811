package models

// Trajectory tensor columns.
const (
	TrajX = iota
	TrajY
	TrajYaw
	trajDim
)

// Trajectories holds the (batch, steps, 3) poses produced by integrating the
// sampled control batch.
type Trajectories struct {
	Data *Tensor
}

// Reset reallocates the trajectory tensor to (batch, steps).
func (t *Trajectories) Reset(batch, steps int) {
	t.Data = NewTensor(batch, steps, trajDim)
}

// X returns the x coordinate of trajectory b at step s.
func (t *Trajectories) X(b, s int) float64 { return t.Data.At(b, s, TrajX) }

// Y returns the y coordinate of trajectory b at step s.
func (t *Trajectories) Y(b, s int) float64 { return t.Data.At(b, s, TrajY) }

// Yaw returns the heading of trajectory b at step s.
func (t *Trajectories) Yaw(b, s int) float64 { return t.Data.At(b, s, TrajYaw) }

// Batch returns the batch dimension.
func (t *Trajectories) Batch() int {
	b, _, _ := t.Data.Shape()
	return b
}

// Steps returns the horizon length.
func (t *Trajectories) Steps() int {
	_, s, _ := t.Data.Shape()
	return s
}

package models

import "time"

// Path is the reference plan as parallel coordinate slices, one entry per
// waypoint. It may be empty, in which case critics degrade to zero
// contribution.
type Path struct {
	X    []float64
	Y    []float64
	Yaws []float64

	FrameID string
	Stamp   time.Time
}

// Reset reallocates the path buffers for n waypoints.
func (p *Path) Reset(n int) {
	p.X = make([]float64, n)
	p.Y = make([]float64, n)
	p.Yaws = make([]float64, n)
}

// Len returns the waypoint count.
func (p *Path) Len() int { return len(p.X) }

// Last returns the final waypoint pose. The path must be non-empty.
func (p *Path) Last() Pose {
	i := len(p.X) - 1
	return Pose{X: p.X[i], Y: p.Y[i], Yaw: p.Yaws[i]}
}

// PathFromPoses builds a Path from a waypoint sequence stamped with the
// plan's frame and time.
func PathFromPoses(frameID string, stamp time.Time, poses []Pose) Path {
	p := Path{FrameID: frameID, Stamp: stamp}
	p.Reset(len(poses))
	for i, pose := range poses {
		p.X[i] = pose.X
		p.Y[i] = pose.Y
		p.Yaws[i] = pose.Yaw
	}
	return p
}

package models

import "time"

// Pose is a planar robot pose.
type Pose struct {
	X   float64
	Y   float64
	Yaw float64
}

// PoseStamped is a Pose tagged with its frame and time of observation.
type PoseStamped struct {
	Pose
	FrameID string
	Stamp   time.Time
}

// Twist is a body-frame velocity command or measurement.
type Twist struct {
	VX float64
	VY float64
	WZ float64
}

// TwistStamped is a Twist tagged with its frame and timestamp.
type TwistStamped struct {
	Twist
	FrameID string
	Stamp   time.Time
}

// Control is one row of a control sequence.
type Control struct {
	VX float64
	VY float64
	WZ float64
}

// GoalChecker is the host-provided predicate deciding whether the goal has
// been reached. The optimizer and critics only read tolerances from it.
type GoalChecker interface {
	// GetTolerances returns the x and y position tolerances.
	GetTolerances() (float64, float64)
	// IsGoalReached reports whether pose is at goal given the current velocity.
	IsGoalReached(pose Pose, goal Pose, velocity Twist) bool
}

// Package controller is the thin host-side wrapper around the optimizer: a
// stock goal checker, and a clock-paced tick loop for driving a simulated
// robot.
package controller

import (
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// SimpleGoalChecker reaches the goal when the robot is within a planar
// distance tolerance, ignoring heading and velocity.
type SimpleGoalChecker struct {
	XYTolerance float64
}

// GetTolerances returns the x and y position tolerances.
func (c *SimpleGoalChecker) GetTolerances() (float64, float64) {
	return c.XYTolerance, c.XYTolerance
}

// IsGoalReached reports whether pose is within the tolerance of goal.
func (c *SimpleGoalChecker) IsGoalReached(pose, goal models.Pose, _ models.Twist) bool {
	return utils.Hypot2(pose.X, pose.Y, goal.X, goal.Y) < c.XYTolerance*c.XYTolerance
}

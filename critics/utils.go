package critics

import (
	"math"

	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// withinPositionGoalTolerance reports whether robot is within the goal
// checker's position tolerance of the final path pose.
func withinPositionGoalTolerance(checker models.GoalChecker, robot models.Pose, path *models.Path) bool {
	if checker == nil || path.Len() == 0 {
		return false
	}
	tolX, _ := checker.GetTolerances()
	return withinToleranceOfGoal(tolX, robot, path)
}

// withinToleranceOfGoal reports whether robot is within tol of the final
// path pose.
func withinToleranceOfGoal(tol float64, robot models.Pose, path *models.Path) bool {
	if path.Len() == 0 {
		return false
	}
	goal := path.Last()
	return utils.Hypot2(robot.X, robot.Y, goal.X, goal.Y) < tol*tol
}

// posePointAngle returns the absolute heading error between pose's yaw and
// the direction from pose to (x, y).
func posePointAngle(pose models.Pose, x, y float64) float64 {
	yaw := math.Atan2(y-pose.Y, x-pose.X)
	return math.Abs(utils.ShortestAngularDistance(yaw, pose.Yaw))
}

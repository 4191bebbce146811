package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// GoalCritic pulls trajectory endpoints toward the final path pose once the
// robot is inside the position goal tolerance, and raises the goal-reached
// flag that short-circuits the path-tracking critics.
type GoalCritic struct {
	baseCritic
}

func newGoalCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &GoalCritic{baseCritic: newBaseCritic(GoalCriticName, cfg, logger)}, nil
}

// EnabledAfterGoal is true: goal proximity is the one objective that still
// matters after the goal flag is set.
func (c *GoalCritic) EnabledAfterGoal() bool { return true }

// Score adds the distance from each trajectory's final point to the goal.
func (c *GoalCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() == 0 {
		return
	}
	if !withinPositionGoalTolerance(data.GoalChecker, data.State.Pose.Pose, data.Path) {
		return
	}
	goal := data.Path.Last()
	last := data.Trajectories.Steps() - 1
	for i := range data.Costs {
		dist := math.Hypot(data.Trajectories.X(i, last)-goal.X, data.Trajectories.Y(i, last)-goal.Y)
		data.Costs[i] += math.Pow(c.weight*dist, c.power)
	}
	data.GoalReached = true
}

// GoalAngleCritic aligns trajectory headings with the goal heading once the
// robot is inside the position goal tolerance.
type GoalAngleCritic struct {
	baseCritic
}

func newGoalAngleCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &GoalAngleCritic{baseCritic: newBaseCritic(GoalAngleCriticName, cfg, logger)}, nil
}

// EnabledAfterGoal is true for the same reason as GoalCritic.
func (c *GoalAngleCritic) EnabledAfterGoal() bool { return true }

// Score adds the mean absolute heading error to the goal yaw.
func (c *GoalAngleCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() == 0 {
		return
	}
	if !withinPositionGoalTolerance(data.GoalChecker, data.State.Pose.Pose, data.Path) {
		return
	}
	goal := data.Path.Last()
	steps := data.Trajectories.Steps()
	for i := range data.Costs {
		sum := 0.0
		for t := 0; t < steps; t++ {
			sum += math.Abs(utils.ShortestAngularDistance(data.Trajectories.Yaw(i, t), goal.Yaw))
		}
		data.Costs[i] += math.Pow(c.weight*sum/float64(steps), c.power)
	}
	data.GoalReached = true
}

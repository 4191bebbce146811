package critics

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// PathAlignCritic keeps trajectories close to the reference path by summing
// the distance from sampled trajectory points to their nearest path segment.
// It stands down near the goal and while the batch has not yet progressed
// along the path, where alignment pressure would fight the goal and
// path-follow critics.
type PathAlignCritic struct {
	baseCritic
	thresholdToConsider float64
	offsetFromFurthest  int
	trajectoryPointStep int
}

func newPathAlignCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &PathAlignCritic{
		baseCritic:          newBaseCritic(PathAlignCriticName, cfg, logger),
		thresholdToConsider: cfg.ThresholdToConsider,
		offsetFromFurthest:  cfg.OffsetFromFurthest,
		trajectoryPointStep: cfg.TrajectoryPointStep,
	}, nil
}

// Score adds the mean point-to-segment distance over the sampled trajectory
// points, raised to the configured power.
func (c *PathAlignCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() < 2 {
		return
	}
	if withinToleranceOfGoal(c.thresholdToConsider, data.State.Pose.Pose, data.Path) {
		return
	}
	if data.PathFurthestReachedPoint() < c.offsetFromFurthest {
		return
	}

	steps := data.Trajectories.Steps()
	segments := data.Path.Len() - 1
	step := c.trajectoryPointStep
	if step < 1 {
		step = 1
	}
	for i := range data.Costs {
		summed := 0.0
		evaluated := 0
		for t := step; t < steps; t += step {
			p := r3.Vector{X: data.Trajectories.X(i, t), Y: data.Trajectories.Y(i, t)}
			minDist := math.Inf(1)
			for s := 0; s < segments; s++ {
				a := r3.Vector{X: data.Path.X[s], Y: data.Path.Y[s]}
				b := r3.Vector{X: data.Path.X[s+1], Y: data.Path.Y[s+1]}
				if dist := utils.DistToSegment(p, a, b); dist < minDist {
					minDist = dist
				}
			}
			summed += minDist
			evaluated++
		}
		if evaluated == 0 {
			continue
		}
		data.Costs[i] += math.Pow(c.weight*summed/float64(evaluated), c.power)
	}
}

// ApproxReferenceTrajectoryCritic is the cheap variant of path alignment:
// nearest-waypoint distance instead of segment projection, evaluated at every
// trajectory point. Acceptable when the horizon is short relative to the
// plan's waypoint spacing.
type ApproxReferenceTrajectoryCritic struct {
	baseCritic
}

func newApproxReferenceTrajectoryCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &ApproxReferenceTrajectoryCritic{
		baseCritic: newBaseCritic(ApproxReferenceTrajectoryCriticName, cfg, logger),
	}, nil
}

// Score adds the mean nearest-waypoint distance over all trajectory points.
func (c *ApproxReferenceTrajectoryCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() == 0 {
		return
	}
	if withinPositionGoalTolerance(data.GoalChecker, data.State.Pose.Pose, data.Path) {
		return
	}
	steps := data.Trajectories.Steps()
	for i := range data.Costs {
		summed := 0.0
		for t := 0; t < steps; t++ {
			tx := data.Trajectories.X(i, t)
			ty := data.Trajectories.Y(i, t)
			minDist := math.Inf(1)
			for j := 0; j < data.Path.Len(); j++ {
				if dist := utils.Hypot2(tx, ty, data.Path.X[j], data.Path.Y[j]); dist < minDist {
					minDist = dist
				}
			}
			summed += math.Sqrt(minDist)
		}
		data.Costs[i] += math.Pow(c.weight*summed/float64(steps), c.power)
	}
}

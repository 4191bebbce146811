package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// PathAngleCritic penalizes trajectories whose headings point away from a
// path point just beyond the batch's furthest progress. It only engages when
// the robot itself is badly misaligned with that point, leaving small
// heading errors to the alignment critics.
type PathAngleCritic struct {
	baseCritic
	thresholdToConsider float64
	offsetFromFurthest  int
	maxAngleToFurthest  float64
}

func newPathAngleCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &PathAngleCritic{
		baseCritic:          newBaseCritic(PathAngleCriticName, cfg, logger),
		thresholdToConsider: cfg.ThresholdToConsider,
		offsetFromFurthest:  cfg.OffsetFromFurthest,
		maxAngleToFurthest:  cfg.MaxAngleToFurthest,
	}, nil
}

// Score adds the mean absolute angular error between each trajectory's yaw
// and the direction toward the offsetted path point.
func (c *PathAngleCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() == 0 {
		return
	}
	if withinToleranceOfGoal(c.thresholdToConsider, data.State.Pose.Pose, data.Path) {
		return
	}
	offsetted := data.PathFurthestReachedPoint() + c.offsetFromFurthest
	if offsetted > data.Path.Len()-1 {
		offsetted = data.Path.Len() - 1
	}
	px := data.Path.X[offsetted]
	py := data.Path.Y[offsetted]
	if posePointAngle(data.State.Pose.Pose, px, py) < c.maxAngleToFurthest {
		return
	}

	steps := data.Trajectories.Steps()
	for i := range data.Costs {
		sum := 0.0
		for t := 0; t < steps; t++ {
			toPoint := math.Atan2(py-data.Trajectories.Y(i, t), px-data.Trajectories.X(i, t))
			sum += math.Abs(utils.ShortestAngularDistance(data.Trajectories.Yaw(i, t), toPoint))
		}
		data.Costs[i] += math.Pow(c.weight*sum/float64(steps), c.power)
	}
}

package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
)

// PathFollowCritic drives trajectory endpoints toward a path point offset
// beyond the batch's furthest progress, providing forward pressure early in
// the plan. It stands down once a sufficient fraction of the path has been
// consumed and the alignment critics take over.
type PathFollowCritic struct {
	baseCritic
	maxPathRatio       float64
	offsetFromFurthest int
}

func newPathFollowCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &PathFollowCritic{
		baseCritic:         newBaseCritic(PathFollowCriticName, cfg, logger),
		maxPathRatio:       cfg.MaxPathRatio,
		offsetFromFurthest: cfg.OffsetFromFurthest,
	}, nil
}

// Score adds the distance from each trajectory's final point to the
// offsetted target point.
func (c *PathFollowCritic) Score(data *CriticData) {
	if !c.enabled || data.Path.Len() == 0 {
		return
	}
	if data.PathRatioReached() > c.maxPathRatio {
		return
	}
	offsetted := data.PathFurthestReachedPoint() + c.offsetFromFurthest
	if offsetted > data.Path.Len()-1 {
		offsetted = data.Path.Len() - 1
	}
	px := data.Path.X[offsetted]
	py := data.Path.Y[offsetted]

	last := data.Trajectories.Steps() - 1
	for i := range data.Costs {
		dist := math.Hypot(data.Trajectories.X(i, last)-px, data.Trajectories.Y(i, last)-py)
		data.Costs[i] += math.Pow(c.weight*dist, c.power)
	}
}

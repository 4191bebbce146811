package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// ObstaclesCritic queries the costmap along every trajectory. Trajectories
// that touch a lethal cell (or leave the map) receive a flat collision
// penalty; the rest are charged their accumulated non-lethal cell cost. When
// every sampled trajectory collides the critic raises the fail flag so the
// optimizer retries from a reset nominal sequence.
type ObstaclesCritic struct {
	baseCritic
	costmap       costmap.Costmap
	collisionCost float64

	collide []bool
}

func newObstaclesCritic(cfg Config, _ *models.OptimizerSettings, cm costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &ObstaclesCritic{
		baseCritic:    newBaseCritic(ObstaclesCriticName, cfg, logger),
		costmap:       cm,
		collisionCost: cfg.CollisionCost,
	}, nil
}

// maxNonLethalCost normalizes accumulated cell costs into [0, steps].
const maxNonLethalCost = float64(costmap.InscribedInflatedObstacle)

func inCollision(cost uint8, ok bool) bool {
	return !ok || cost >= costmap.LethalObstacle
}

// Score walks trajectory poses through the costmap, parallelized over
// contiguous batch ranges. Only data.Costs[i] and the critic's own collide
// scratch are written per trajectory, so groups share no mutable state.
func (c *ObstaclesCritic) Score(data *CriticData) {
	if !c.enabled {
		return
	}
	batch := data.Trajectories.Batch()
	steps := data.Trajectories.Steps()
	if cap(c.collide) < batch {
		c.collide = make([]bool, batch)
	}
	c.collide = c.collide[:batch]

	utils.GroupWork(batch, func(from, to int) {
		for i := from; i < to; i++ {
			collide := false
			trajCost := 0.0
			for t := 0; t < steps; t++ {
				cost, ok := c.costmap.AtWorld(data.Trajectories.X(i, t), data.Trajectories.Y(i, t))
				if inCollision(cost, ok) {
					collide = true
					break
				}
				trajCost += float64(cost) / maxNonLethalCost
			}
			c.collide[i] = collide
			if collide {
				data.Costs[i] += c.collisionCost
			} else {
				data.Costs[i] += math.Pow(c.weight*trajCost, c.power)
			}
		}
	})

	allCollide := batch > 0
	for _, collided := range c.collide {
		if !collided {
			allCollide = false
			break
		}
	}
	if allCollide {
		data.FailFlag = true
	}
}

// Package critics implements the trajectory-scoring framework: a shared
// scratchpad handed to each critic, an ordered manager that composes them,
// and the concrete cost functions.
package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// CriticData is the shared mutable scratch passed to every critic during one
// evaluation. Critics accumulate into Costs in place and may raise FailFlag
// to request a retry or GoalReached to short-circuit later critics.
type CriticData struct {
	State        *models.State
	Trajectories *models.Trajectories
	Path         *models.Path
	Costs        []float64
	ModelDT      float64

	FailFlag    bool
	GoalReached bool

	GoalChecker models.GoalChecker
	MotionModel models.MotionModel

	furthestReachedPathPoint int
	furthestSet              bool
}

// ResetFlags clears the per-evaluation flags and cached path bookkeeping.
func (d *CriticData) ResetFlags() {
	d.FailFlag = false
	d.GoalReached = false
	d.furthestSet = false
}

// PathFurthestReachedPoint returns the largest path index that is the
// nearest waypoint to some trajectory endpoint, computed once per evaluation.
func (d *CriticData) PathFurthestReachedPoint() int {
	if d.furthestSet {
		return d.furthestReachedPathPoint
	}
	furthest := 0
	last := d.Trajectories.Steps() - 1
	for i := 0; i < d.Trajectories.Batch(); i++ {
		tx := d.Trajectories.X(i, last)
		ty := d.Trajectories.Y(i, last)
		minDist := math.Inf(1)
		minIdx := 0
		for j := 0; j < d.Path.Len(); j++ {
			dist := utils.Hypot2(tx, ty, d.Path.X[j], d.Path.Y[j])
			if dist < minDist {
				minDist = dist
				minIdx = j
			}
		}
		if minIdx > furthest {
			furthest = minIdx
		}
	}
	d.furthestReachedPathPoint = furthest
	d.furthestSet = true
	return furthest
}

// PathRatioReached returns the fraction of the path already passed by the
// trajectory batch.
func (d *CriticData) PathRatioReached() float64 {
	if d.Path.Len() == 0 {
		return 0
	}
	return float64(d.PathFurthestReachedPoint()) / float64(d.Path.Len())
}

// CriticFunction scores a trajectory batch against one objective, adding its
// weighted contribution to data.Costs in place. Critics never return errors;
// they signal transient failure through data.FailFlag.
type CriticFunction interface {
	Name() string
	Score(data *CriticData)
	// EnabledAfterGoal reports whether the critic still runs once an earlier
	// critic has marked the goal as reached.
	EnabledAfterGoal() bool
}

// baseCritic carries the configuration every critic shares.
type baseCritic struct {
	name    string
	enabled bool
	weight  float64
	power   float64
	logger  golog.Logger
}

func newBaseCritic(name string, cfg Config, logger golog.Logger) baseCritic {
	return baseCritic{
		name:    name,
		enabled: cfg.Enabled,
		weight:  cfg.Weight,
		power:   cfg.Power,
		logger:  logger,
	}
}

// Name returns the critic's registered name.
func (b *baseCritic) Name() string { return b.name }

// EnabledAfterGoal is false for all but the goal-proximity critics.
func (b *baseCritic) EnabledAfterGoal() bool { return false }

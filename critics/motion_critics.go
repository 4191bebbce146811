package critics

import (
	"math"

	"github.com/edaniels/golog"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
)

// PreferForwardCritic penalizes reverse motion so the optimizer only backs
// up when the other critics leave it no alternative.
type PreferForwardCritic struct {
	baseCritic
}

func newPreferForwardCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &PreferForwardCritic{baseCritic: newBaseCritic(PreferForwardCriticName, cfg, logger)}, nil
}

// Score adds the mean reverse speed max(0, -vx) of each trajectory.
func (c *PreferForwardCritic) Score(data *CriticData) {
	if !c.enabled {
		return
	}
	batch, steps, _ := data.State.Data.Shape()
	vx := data.State.Idx.VX()
	for i := 0; i < batch; i++ {
		sum := 0.0
		for t := 0; t < steps; t++ {
			if v := data.State.Data.At(i, t, vx); v < 0 {
				sum -= v
			}
		}
		data.Costs[i] += math.Pow(c.weight*sum/float64(steps), c.power)
	}
}

// TwirlingCritic penalizes accumulated angular speed to discourage
// pathological spinning that the position critics cannot see.
type TwirlingCritic struct {
	baseCritic
}

func newTwirlingCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &TwirlingCritic{baseCritic: newBaseCritic(TwirlingCriticName, cfg, logger)}, nil
}

// Score adds the mean |wz| of each trajectory.
func (c *TwirlingCritic) Score(data *CriticData) {
	if !c.enabled {
		return
	}
	batch, steps, _ := data.State.Data.Shape()
	wz := data.State.Idx.WZ()
	for i := 0; i < batch; i++ {
		sum := 0.0
		for t := 0; t < steps; t++ {
			sum += math.Abs(data.State.Data.At(i, t, wz))
		}
		data.Costs[i] += math.Pow(c.weight*sum/float64(steps), c.power)
	}
}

// SmootherCritic penalizes jerky control sequences by charging the mean
// absolute difference between consecutive commanded controls on each axis.
type SmootherCritic struct {
	baseCritic
}

func newSmootherCritic(cfg Config, _ *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &SmootherCritic{baseCritic: newBaseCritic(SmootherCriticName, cfg, logger)}, nil
}

// Score adds the summed per-axis mean |delta control| of each trajectory.
func (c *SmootherCritic) Score(data *CriticData) {
	if !c.enabled {
		return
	}
	batch, steps, _ := data.State.Data.Shape()
	if steps < 2 {
		return
	}
	idx := &data.State.Idx
	cols := []int{idx.CVX(), idx.CWZ()}
	if idx.IsHolonomic() {
		cols = append(cols, idx.CVY())
	}
	for i := 0; i < batch; i++ {
		measure := 0.0
		for _, col := range cols {
			sum := 0.0
			for t := 1; t < steps; t++ {
				sum += math.Abs(data.State.Data.At(i, t, col) - data.State.Data.At(i, t-1, col))
			}
			measure += sum / float64(steps-1)
		}
		data.Costs[i] += math.Pow(c.weight*measure, c.power)
	}
}

// ConstraintCritic charges motion outside the soft velocity bounds, so the
// softmax update prefers feasible samples even before hard clipping. For
// Ackermann platforms it additionally charges turning tighter than the
// minimum radius.
type ConstraintCritic struct {
	baseCritic
	maxVel float64
	minVel float64
}

func newConstraintCritic(cfg Config, settings *models.OptimizerSettings, _ costmap.Costmap, logger golog.Logger) (CriticFunction, error) {
	return &ConstraintCritic{
		baseCritic: newBaseCritic(ConstraintCriticName, cfg, logger),
		maxVel:     settings.BaseConstraints.VX,
		minVel:     cfg.VXMin,
	}, nil
}

// Score adds the time-integrated out-of-bounds velocity magnitude.
func (c *ConstraintCritic) Score(data *CriticData) {
	if !c.enabled {
		return
	}
	batch, steps, _ := data.State.Data.Shape()
	vxCol := data.State.Idx.VX()
	wzCol := data.State.Idx.WZ()
	acker, isAcker := data.MotionModel.(models.AckermannModel)
	for i := 0; i < batch; i++ {
		sum := 0.0
		for t := 0; t < steps; t++ {
			vx := data.State.Data.At(i, t, vxCol)
			if vx > c.maxVel {
				sum += vx - c.maxVel
			} else if vx < c.minVel {
				sum += c.minVel - vx
			}
			if isAcker {
				wz := data.State.Data.At(i, t, wzCol)
				if wz != 0 {
					if radius := math.Abs(vx) / math.Abs(wz); radius < acker.MinTurningRadius {
						sum += acker.MinTurningRadius - radius
					}
				}
			}
		}
		data.Costs[i] += math.Pow(c.weight*sum*data.ModelDT, c.power)
	}
}

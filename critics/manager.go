package critics

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/models"
)

// Registered critic names. Goal-detector critics should be ordered first in
// any configuration so their goal-reached flag is visible to the rest.
const (
	GoalCriticName                      = "GoalCritic"
	GoalAngleCriticName                 = "GoalAngleCritic"
	ObstaclesCriticName                 = "ObstaclesCritic"
	PathAlignCriticName                 = "PathAlignCritic"
	ApproxReferenceTrajectoryCriticName = "ApproxReferenceTrajectoryCritic"
	PathAngleCriticName                 = "PathAngleCritic"
	PathFollowCriticName                = "PathFollowCritic"
	PreferForwardCriticName             = "PreferForwardCritic"
	TwirlingCriticName                  = "TwirlingCritic"
	ConstraintCriticName                = "ConstraintCritic"
	SmootherCriticName                  = "SmootherCritic"
)

// Constructor builds a configured critic.
type Constructor func(cfg Config, settings *models.OptimizerSettings, cm costmap.Costmap, logger golog.Logger) (CriticFunction, error)

var registry = map[string]Constructor{
	GoalCriticName:                      newGoalCritic,
	GoalAngleCriticName:                 newGoalAngleCritic,
	ObstaclesCriticName:                 newObstaclesCritic,
	PathAlignCriticName:                 newPathAlignCritic,
	ApproxReferenceTrajectoryCriticName: newApproxReferenceTrajectoryCritic,
	PathAngleCriticName:                 newPathAngleCritic,
	PathFollowCriticName:                newPathFollowCritic,
	PreferForwardCriticName:             newPreferForwardCritic,
	TwirlingCriticName:                  newTwirlingCritic,
	ConstraintCriticName:                newConstraintCritic,
	SmootherCriticName:                  newSmootherCritic,
}

// RegisteredCritics returns the known critic names, sorted.
func RegisteredCritics() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCriticOrder is the stock evaluation order: goal detectors first,
// then obstacle and path-tracking critics, then motion shaping.
var DefaultCriticOrder = []string{
	GoalCriticName,
	GoalAngleCriticName,
	ObstaclesCriticName,
	PathAlignCriticName,
	PathFollowCriticName,
	PathAngleCriticName,
	PreferForwardCriticName,
	TwirlingCriticName,
	ConstraintCriticName,
}

// CriticManager holds the ordered, owning collection of configured critics
// and invokes them over a shared CriticData.
type CriticManager struct {
	logger  golog.Logger
	critics []CriticFunction
}

// NewCriticManager builds critics by name in evaluation order. cfgs supplies
// each critic's configuration; names missing from cfgs (or a nil cfgs) fall
// back to DefaultConfig.
// Unknown names and constructor failures are aggregated into one error.
func NewCriticManager(
	names []string,
	cfgs map[string]Config,
	settings *models.OptimizerSettings,
	cm costmap.Costmap,
	logger golog.Logger,
) (*CriticManager, error) {
	m := &CriticManager{logger: logger}
	var err error
	for _, name := range names {
		ctor, ok := registry[name]
		if !ok {
			err = multierr.Append(err, errors.Errorf("unknown critic %q", name))
			continue
		}
		cfg, ok := cfgs[name]
		if !ok {
			cfg = DefaultConfig(name)
		}
		critic, ctorErr := ctor(cfg, settings, cm, logger)
		if ctorErr != nil {
			err = multierr.Append(err, errors.Wrapf(ctorErr, "configuring critic %q", name))
			continue
		}
		m.critics = append(m.critics, critic)
		logger.Debugf("critic %s configured (enabled=%t weight=%.3f power=%.1f)",
			name, cfg.Enabled, cfg.Weight, cfg.Power)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Critics returns the managed critics in evaluation order.
func (m *CriticManager) Critics() []CriticFunction { return m.critics }

// EvalTrajectoriesScores runs every critic in order over data. Once a critic
// marks the goal as reached, only critics flagged enabled-after-goal still
// run.
func (m *CriticManager) EvalTrajectoriesScores(data *CriticData) {
	data.ResetFlags()
	for _, critic := range m.critics {
		if data.GoalReached && !critic.EnabledAfterGoal() {
			continue
		}
		critic.Score(data)
	}
}

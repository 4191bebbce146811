// Package config loads and validates the controller configuration from YAML
// and translates it into optimizer settings and critic configurations.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/mppi/critics"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/utils"
)

// Stock values mirroring the reference controller defaults.
const (
	DefaultModelDT             = 0.1
	DefaultTimeSteps           = 15
	DefaultBatchSize           = 400
	DefaultIterationCount      = 1
	DefaultTemperature         = 0.25
	DefaultVXMax               = 0.5
	DefaultVYMax               = 0.5
	DefaultWZMax               = 1.3
	DefaultVXStd               = 0.2
	DefaultVYStd               = 0.2
	DefaultWZStd               = 1.0
	DefaultRetryAttemptLimit   = 1
	DefaultControllerFrequency = 10.0
	DefaultMinTurningRadius    = 0.2
)

// CriticConfig is the per-critic YAML block. Pointer fields distinguish
// "unset, use the critic's default" from explicit zeros.
type CriticConfig struct {
	Enabled               *bool    `yaml:"enabled"`
	CostWeight            *float64 `yaml:"cost_weight"`
	CostPower             *float64 `yaml:"cost_power"`
	CollisionCost         *float64 `yaml:"collision_cost"`
	ThresholdToConsider   *float64 `yaml:"threshold_to_consider"`
	OffsetFromFurthest    *int     `yaml:"offset_from_furthest"`
	TrajectoryPointStep   *int     `yaml:"trajectory_point_step"`
	MaxAngleToFurthestDeg *float64 `yaml:"max_angle_to_furthest_deg"`
	MaxPathRatio          *float64 `yaml:"max_path_ratio"`
	VXMin                 *float64 `yaml:"vx_min"`
}

// Config is the full controller configuration.
type Config struct {
	ModelDT             float64 `yaml:"model_dt"`
	TimeSteps           int     `yaml:"time_steps"`
	BatchSize           int     `yaml:"batch_size"`
	IterationCount      int     `yaml:"iteration_count"`
	Temperature         float64 `yaml:"temperature"`
	VXMax               float64 `yaml:"vx_max"`
	VYMax               float64 `yaml:"vy_max"`
	WZMax               float64 `yaml:"wz_max"`
	VXStd               float64 `yaml:"vx_std"`
	VYStd               float64 `yaml:"vy_std"`
	WZStd               float64 `yaml:"wz_std"`
	RetryAttemptLimit   int     `yaml:"retry_attempt_limit"`
	MotionModel         string  `yaml:"motion_model"`
	MinTurningRadius    float64 `yaml:"min_turning_radius"`
	ControllerFrequency float64 `yaml:"controller_frequency"`
	Seed                uint64  `yaml:"seed"`
	Smoothing           bool    `yaml:"smoothing"`

	Critics        []string                `yaml:"critics"`
	CriticSettings map[string]CriticConfig `yaml:"critic_settings"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		ModelDT:             DefaultModelDT,
		TimeSteps:           DefaultTimeSteps,
		BatchSize:           DefaultBatchSize,
		IterationCount:      DefaultIterationCount,
		Temperature:         DefaultTemperature,
		VXMax:               DefaultVXMax,
		VYMax:               DefaultVYMax,
		WZMax:               DefaultWZMax,
		VXStd:               DefaultVXStd,
		VYStd:               DefaultVYStd,
		WZStd:               DefaultWZStd,
		RetryAttemptLimit:   DefaultRetryAttemptLimit,
		MotionModel:         models.DiffDriveModelName,
		MinTurningRadius:    DefaultMinTurningRadius,
		ControllerFrequency: DefaultControllerFrequency,
		Critics:             append([]string{}, critics.DefaultCriticOrder...),
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating config %q", path)
	}
	return cfg, nil
}

// Validate rejects configurations the optimizer cannot run with.
func (c *Config) Validate() error {
	if c.ModelDT <= 0 {
		return errors.Errorf("model_dt must be positive, got %f", c.ModelDT)
	}
	if c.TimeSteps < 2 {
		return errors.Errorf("time_steps must be at least 2, got %d", c.TimeSteps)
	}
	if c.BatchSize < 1 {
		return errors.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}
	if c.IterationCount < 1 {
		return errors.Errorf("iteration_count must be at least 1, got %d", c.IterationCount)
	}
	if c.Temperature <= 0 {
		return errors.Errorf("temperature must be positive, got %f", c.Temperature)
	}
	if c.ControllerFrequency <= 0 {
		return errors.Errorf("controller_frequency must be positive, got %f", c.ControllerFrequency)
	}
	if _, err := models.MotionModelFromName(c.MotionModel, c.MinTurningRadius); err != nil {
		return err
	}
	return nil
}

// Settings translates the configuration into optimizer settings.
func (c *Config) Settings() models.OptimizerSettings {
	constraints := models.Constraints{VX: c.VXMax, VY: c.VYMax, WZ: c.WZMax}
	return models.OptimizerSettings{
		ModelDT:             c.ModelDT,
		TimeSteps:           c.TimeSteps,
		BatchSize:           c.BatchSize,
		IterationCount:      c.IterationCount,
		Temperature:         c.Temperature,
		BaseConstraints:     constraints,
		Constraints:         constraints,
		SamplingStd:         models.SamplingStd{VX: c.VXStd, VY: c.VYStd, WZ: c.WZStd},
		RetryAttemptLimit:   c.RetryAttemptLimit,
		ControllerFrequency: c.ControllerFrequency,
		Seed:                c.Seed,
	}
}

// CriticConfigs resolves each configured critic's settings, overlaying the
// YAML block onto the critic's defaults.
func (c *Config) CriticConfigs() map[string]critics.Config {
	out := make(map[string]critics.Config, len(c.Critics))
	for _, name := range c.Critics {
		cfg := critics.DefaultConfig(name)
		if block, ok := c.CriticSettings[name]; ok {
			if block.Enabled != nil {
				cfg.Enabled = *block.Enabled
			}
			if block.CostWeight != nil {
				cfg.Weight = *block.CostWeight
			}
			if block.CostPower != nil {
				cfg.Power = *block.CostPower
			}
			if block.CollisionCost != nil {
				cfg.CollisionCost = *block.CollisionCost
			}
			if block.ThresholdToConsider != nil {
				cfg.ThresholdToConsider = *block.ThresholdToConsider
			}
			if block.OffsetFromFurthest != nil {
				cfg.OffsetFromFurthest = *block.OffsetFromFurthest
			}
			if block.TrajectoryPointStep != nil {
				cfg.TrajectoryPointStep = *block.TrajectoryPointStep
			}
			if block.MaxAngleToFurthestDeg != nil {
				cfg.MaxAngleToFurthest = utils.DegToRad(*block.MaxAngleToFurthestDeg)
			}
			if block.MaxPathRatio != nil {
				cfg.MaxPathRatio = *block.MaxPathRatio
			}
			if block.VXMin != nil {
				cfg.VXMin = *block.VXMin
			}
		}
		out[name] = cfg
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/mppi/critics"
	"go.viam.com/mppi/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.ModelDT, test.ShouldEqual, 0.1)
	test.That(t, cfg.TimeSteps, test.ShouldEqual, 15)
	test.That(t, cfg.BatchSize, test.ShouldEqual, 400)
	test.That(t, cfg.Temperature, test.ShouldEqual, 0.25)
	test.That(t, cfg.MotionModel, test.ShouldEqual, models.DiffDriveModelName)
	test.That(t, cfg.Critics, test.ShouldResemble, critics.DefaultCriticOrder)

	settings := cfg.Settings()
	test.That(t, settings.BaseConstraints, test.ShouldResemble, models.Constraints{VX: 0.5, VY: 0.5, WZ: 1.3})
	test.That(t, settings.Constraints, test.ShouldResemble, settings.BaseConstraints)
	test.That(t, settings.SamplingStd, test.ShouldResemble, models.SamplingStd{VX: 0.2, VY: 0.2, WZ: 1.0})
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mppi.yaml")
	yaml := `
batch_size: 100
motion_model: Omni
seed: 99
critics: [GoalCritic, ObstaclesCritic]
critic_settings:
  ObstaclesCritic:
    cost_weight: 2.5
    collision_cost: 5000
`
	test.That(t, os.WriteFile(path, []byte(yaml), 0o600), test.ShouldBeNil)

	cfg, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.BatchSize, test.ShouldEqual, 100)
	test.That(t, cfg.ModelDT, test.ShouldEqual, 0.1) // untouched default
	test.That(t, cfg.MotionModel, test.ShouldEqual, models.OmniModelName)
	test.That(t, cfg.Seed, test.ShouldEqual, 99)

	criticCfgs := cfg.CriticConfigs()
	test.That(t, len(criticCfgs), test.ShouldEqual, 2)
	obstacles := criticCfgs[critics.ObstaclesCriticName]
	test.That(t, obstacles.Weight, test.ShouldEqual, 2.5)
	test.That(t, obstacles.CollisionCost, test.ShouldEqual, 5000.0)
	test.That(t, obstacles.Power, test.ShouldEqual, 2.0) // critic default preserved
	goal := criticCfgs[critics.GoalCriticName]
	test.That(t, goal.Weight, test.ShouldEqual, 5.0)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bad_model.yaml")
	test.That(t, os.WriteFile(path, []byte("motion_model: Bicycle\n"), 0o600), test.ShouldBeNil)
	_, err := Load(path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not valid")

	path = filepath.Join(dir, "bad_dt.yaml")
	test.That(t, os.WriteFile(path, []byte("model_dt: -0.1\n"), 0o600), test.ShouldBeNil)
	_, err = Load(path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "model_dt")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero time steps", func(c *Config) { c.TimeSteps = 0 }},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"zero iterations", func(c *Config) { c.IterationCount = 0 }},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }},
		{"zero frequency", func(c *Config) { c.ControllerFrequency = 0 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			test.That(t, cfg.Validate(), test.ShouldNotBeNil)
		})
	}
}

package controller

import (
	"context"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"go.viam.com/mppi/models"
	"go.viam.com/mppi/optimizer"
	"go.viam.com/mppi/utils"
)

// StateReporter supplies the robot pose and velocity each tick. In
// production this is the localization stack; in simulation it is the plant
// model.
type StateReporter interface {
	RobotState() (models.PoseStamped, models.Twist)
}

// CommandSink receives each computed velocity command.
type CommandSink interface {
	ApplyCommand(cmd models.TwistStamped)
}

// Controller paces the optimizer at the configured frequency and stops once
// the goal checker is satisfied or the context ends. The clock is injected
// so tests can drive ticks without waiting on wall time.
type Controller struct {
	logger      golog.Logger
	clock       clock.Clock
	optimizer   *optimizer.Optimizer
	goalChecker models.GoalChecker
}

// New constructs a controller; a nil clk selects the wall clock.
func New(logger golog.Logger, opt *optimizer.Optimizer, goalChecker models.GoalChecker, clk clock.Clock) *Controller {
	if clk == nil {
		clk = clock.New()
	}
	return &Controller{
		logger:      logger,
		clock:       clk,
		optimizer:   opt,
		goalChecker: goalChecker,
	}
}

// Run ticks the optimizer against plan until the goal is reached, emitting
// every command to sink. It returns the number of ticks executed.
func (c *Controller) Run(
	ctx context.Context,
	reporter StateReporter,
	sink CommandSink,
	plan models.Path,
	maxTicks int,
) (int, error) {
	if plan.Len() == 0 {
		return 0, errors.New("cannot run controller with an empty plan")
	}
	freq := c.optimizer.Settings().ControllerFrequency
	if freq <= 0 {
		return 0, errors.Errorf("invalid controller frequency %f", freq)
	}
	period := time.Duration(float64(time.Second) * (1.0 / freq))

	ticker := c.clock.Ticker(period)
	defer ticker.Stop()

	goal := plan.Last()
	for tick := 0; ; tick++ {
		if maxTicks > 0 && tick >= maxTicks {
			return tick, nil
		}
		select {
		case <-ctx.Done():
			return tick, ctx.Err()
		case <-ticker.C:
		}

		pose, speed := reporter.RobotState()
		if c.goalChecker.IsGoalReached(pose.Pose, goal, speed) {
			c.logger.Infow("goal reached", "ticks", tick, "x", pose.X, "y", pose.Y)
			return tick, nil
		}
		cmd, err := c.optimizer.EvalControl(pose, speed, plan, c.goalChecker)
		if err != nil {
			return tick, errors.Wrap(err, "controller tick failed")
		}
		sink.ApplyCommand(cmd)
	}
}

// SimulatedRobot is a unicycle plant that integrates applied commands, for
// demos and tests.
type SimulatedRobot struct {
	Pose    models.Pose
	Speed   models.Twist
	FrameID string
	DT      float64
}

// RobotState returns the current simulated pose and velocity.
func (r *SimulatedRobot) RobotState() (models.PoseStamped, models.Twist) {
	return models.PoseStamped{Pose: r.Pose, FrameID: r.FrameID}, r.Speed
}

// ApplyCommand advances the plant by one period under the commanded twist.
func (r *SimulatedRobot) ApplyCommand(cmd models.TwistStamped) {
	sin, cos := math.Sincos(r.Pose.Yaw)
	r.Pose.X += (cmd.VX*cos - cmd.VY*sin) * r.DT
	r.Pose.Y += (cmd.VX*sin + cmd.VY*cos) * r.DT
	r.Pose.Yaw = utils.NormalizeAngle(r.Pose.Yaw + cmd.WZ*r.DT)
	r.Speed = cmd.Twist
}

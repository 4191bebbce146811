package controller

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/critics"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/optimizer"
)

func TestSimpleGoalChecker(t *testing.T) {
	checker := &SimpleGoalChecker{XYTolerance: 0.25}

	tolX, tolY := checker.GetTolerances()
	test.That(t, tolX, test.ShouldEqual, 0.25)
	test.That(t, tolY, test.ShouldEqual, 0.25)

	goal := models.Pose{X: 9.8, Y: 0.95}
	test.That(t, checker.IsGoalReached(models.Pose{X: 10.0, Y: 1.0}, goal, models.Twist{}), test.ShouldBeTrue)
	test.That(t, checker.IsGoalReached(models.Pose{}, goal, models.Twist{}), test.ShouldBeFalse)
}

func TestSimulatedRobotIntegratesCommands(t *testing.T) {
	robot := &SimulatedRobot{FrameID: "odom", DT: 0.1}
	robot.ApplyCommand(models.TwistStamped{Twist: models.Twist{VX: 1.0}})
	test.That(t, robot.Pose.X, test.ShouldAlmostEqual, 0.1, 1e-12)
	test.That(t, robot.Pose.Y, test.ShouldAlmostEqual, 0, 1e-12)

	robot.ApplyCommand(models.TwistStamped{Twist: models.Twist{WZ: 1.0}})
	test.That(t, robot.Pose.Yaw, test.ShouldAlmostEqual, 0.1, 1e-12)

	pose, speed := robot.RobotState()
	test.That(t, pose.FrameID, test.ShouldEqual, "odom")
	test.That(t, speed.WZ, test.ShouldEqual, 1.0)
}

func testOptimizer(t *testing.T) *optimizer.Optimizer {
	t.Helper()
	logger := golog.NewTestLogger(t)
	constraints := models.Constraints{VX: 0.5, VY: 0.5, WZ: 1.3}
	settings := models.OptimizerSettings{
		ModelDT:             0.1,
		TimeSteps:           12,
		BatchSize:           100,
		IterationCount:      1,
		Temperature:         0.25,
		BaseConstraints:     constraints,
		Constraints:         constraints,
		SamplingStd:         models.SamplingStd{VX: 0.2, VY: 0.2, WZ: 0.6},
		RetryAttemptLimit:   1,
		ControllerFrequency: 10,
		Seed:                3,
	}
	grid := costmap.NewCostmap2D(400, 400, 0.05, -10, -10, "odom", costmap.FreeSpace)
	names := []string{critics.GoalCriticName, critics.PathFollowCriticName, critics.PreferForwardCriticName}
	manager, err := critics.NewCriticManager(names, nil, &settings, grid, logger)
	test.That(t, err, test.ShouldBeNil)
	motionModel, err := models.MotionModelFromName(models.DiffDriveModelName, 0)
	test.That(t, err, test.ShouldBeNil)
	opt, err := optimizer.New(logger, settings, motionModel, manager, grid)
	test.That(t, err, test.ShouldBeNil)
	return opt
}

func TestControllerRunTicksOnClock(t *testing.T) {
	logger := golog.NewTestLogger(t)
	opt := testOptimizer(t)
	mock := clock.NewMock()
	checker := &SimpleGoalChecker{XYTolerance: 0.25}
	ctrl := New(logger, opt, checker, mock)

	robot := &SimulatedRobot{FrameID: "odom", DT: 0.1}
	plan := models.PathFromPoses("odom", time.Time{}, []models.Pose{
		{X: 0}, {X: 0.5}, {X: 1.0}, {X: 1.5}, {X: 2.0},
	})

	done := make(chan struct{})
	var ran int
	var runErr error
	go func() {
		defer close(done)
		ran, runErr = ctrl.Run(context.Background(), robot, robot, plan, 5)
	}()

	for {
		select {
		case <-done:
			test.That(t, runErr, test.ShouldBeNil)
			test.That(t, ran, test.ShouldEqual, 5)
			return
		default:
			mock.Add(100 * time.Millisecond)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestControllerRunRejectsEmptyPlan(t *testing.T) {
	logger := golog.NewTestLogger(t)
	opt := testOptimizer(t)
	ctrl := New(logger, opt, &SimpleGoalChecker{XYTolerance: 0.25}, clock.NewMock())
	_, err := ctrl.Run(context.Background(), &SimulatedRobot{}, &SimulatedRobot{}, models.Path{}, 1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "empty plan")
}

func TestControllerRunHonorsContext(t *testing.T) {
	logger := golog.NewTestLogger(t)
	opt := testOptimizer(t)
	ctrl := New(logger, opt, &SimpleGoalChecker{XYTolerance: 0.25}, clock.NewMock())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	plan := models.PathFromPoses("odom", time.Time{}, []models.Pose{{X: 0}, {X: 1}})
	_, err := ctrl.Run(ctx, &SimulatedRobot{}, &SimulatedRobot{}, plan, 0)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

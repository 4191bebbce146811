// Command mppic runs the MPPI controller against a simulated differential
// or omnidirectional robot on a synthetic costmap and reports the run.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/spf13/cobra"

	"go.viam.com/mppi/config"
	"go.viam.com/mppi/controller"
	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/critics"
	"go.viam.com/mppi/models"
	"go.viam.com/mppi/optimizer"
	"go.viam.com/mppi/utils"
	"go.viam.com/mppi/visualization"
)

var (
	configPath   string
	ticks        int
	chartPath    string
	goalX, goalY float64
	tolerance    float64
	withObstacle bool
	realtime     bool
)

var rootCmd = &cobra.Command{
	Use:   "mppic",
	Short: "MPPI controller playground",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a simulated robot along a straight plan",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	simulateCmd.Flags().IntVar(&ticks, "ticks", 200, "max control ticks")
	simulateCmd.Flags().StringVar(&chartPath, "chart", "", "write a trajectory chart to this file")
	simulateCmd.Flags().Float64Var(&goalX, "goal-x", 3.0, "goal x position")
	simulateCmd.Flags().Float64Var(&goalY, "goal-y", 0.0, "goal y position")
	simulateCmd.Flags().Float64Var(&tolerance, "tolerance", 0.25, "goal position tolerance")
	simulateCmd.Flags().BoolVar(&withObstacle, "obstacle", false, "place an obstacle between start and goal")
	simulateCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks on the wall clock")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger := golog.NewDevelopmentLogger("mppic")

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	grid := costmap.NewCostmap2D(200, 200, 0.05, -5, -5, "odom", costmap.FreeSpace)
	if withObstacle {
		midX := goalX / 2
		grid.SetRectWorld(midX-0.15, -0.4, midX+0.15, 0.4, costmap.LethalObstacle)
	}

	settings := cfg.Settings()
	motionModel, err := models.MotionModelFromName(cfg.MotionModel, cfg.MinTurningRadius)
	if err != nil {
		return err
	}
	manager, err := critics.NewCriticManager(cfg.Critics, cfg.CriticConfigs(), &settings, grid, logger)
	if err != nil {
		return err
	}
	opt, err := optimizer.New(logger, settings, motionModel, manager, grid)
	if err != nil {
		return err
	}
	opt.SetSmoothing(cfg.Smoothing)

	plan := straightPlan(goalX, goalY, 0.1)
	checker := &controller.SimpleGoalChecker{XYTolerance: tolerance}
	robot := &controller.SimulatedRobot{FrameID: grid.FrameID(), DT: 1.0 / cfg.ControllerFrequency}

	if realtime {
		ctrl := controller.New(logger, opt, checker, nil)
		ran, err := ctrl.Run(context.Background(), robot, robot, plan, ticks)
		if err != nil {
			return err
		}
		logger.Infow("simulation finished", "ticks", ran)
	} else {
		goal := plan.Last()
		for tick := 0; tick < ticks; tick++ {
			pose, speed := robot.RobotState()
			if checker.IsGoalReached(pose.Pose, goal, speed) {
				logger.Infow("goal reached", "ticks", tick)
				break
			}
			cmd, err := opt.EvalControl(pose, speed, plan, checker)
			if err != nil {
				return err
			}
			robot.ApplyCommand(cmd)
		}
	}

	logger.Infow("final state",
		"x", robot.Pose.X, "y", robot.Pose.Y, "yaw_deg", utils.RadToDeg(robot.Pose.Yaw))

	optimal := opt.GetOptimizedTrajectory()
	fmt.Fprintln(os.Stdout, visualization.RenderProfiles(optimal))

	if chartPath != "" {
		if err := visualization.SaveChart(chartPath, plan, opt.GeneratedTrajectories(), optimal, 40); err != nil {
			return err
		}
		logger.Infof("chart written to %s", chartPath)
	}
	return nil
}

// straightPlan builds a waypoint line from the origin to (gx, gy) with the
// given spacing.
func straightPlan(gx, gy, spacing float64) models.Path {
	length := math.Hypot(gx, gy)
	n := int(length/spacing) + 1
	yaw := math.Atan2(gy, gx)
	poses := make([]models.Pose, 0, n+1)
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		poses = append(poses, models.Pose{X: gx * frac, Y: gy * frac, Yaw: yaw})
	}
	return models.PathFromPoses("odom", time.Now(), poses)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

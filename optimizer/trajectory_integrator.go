package optimizer

import (
	"math"

	"go.viam.com/mppi/models"
)

// TrajectoryIntegrator rolls a state tensor's realized velocities forward
// into world-frame (x, y, yaw) trajectories by forward Euler.
type TrajectoryIntegrator struct{}

// Integrate writes poses for every batch and timestep. Row 0 is the robot
// pose. Heading integrates the previous step's wz, and translation uses the
// pre-update yaw; the critic math depends on this ordering.
func (TrajectoryIntegrator) Integrate(
	trajectories *models.Trajectories,
	settings *models.OptimizerSettings,
	state *models.State,
	holonomic bool,
) {
	batch, steps, _ := state.Data.Shape()
	dt := settings.ModelDT
	vxCol := state.Idx.VX()
	vyCol := state.Idx.VY()
	wzCol := state.Idx.WZ()
	pose := state.Pose

	for b := 0; b < batch; b++ {
		x, y, yaw := pose.X, pose.Y, pose.Yaw
		out := trajectories.Data.Row(b, 0)
		out[models.TrajX] = x
		out[models.TrajY] = y
		out[models.TrajYaw] = yaw
		for t := 1; t < steps; t++ {
			prev := state.Data.Row(b, t-1)
			sin, cos := math.Sincos(yaw)
			dx := prev[vxCol] * cos
			dy := prev[vxCol] * sin
			if holonomic {
				dx -= prev[vyCol] * sin
				dy += prev[vyCol] * cos
			}
			x += dx * dt
			y += dy * dt
			yaw += prev[wzCol] * dt

			out = trajectories.Data.Row(b, t)
			out[models.TrajX] = x
			out[models.TrajY] = y
			out[models.TrajYaw] = yaw
		}
	}
}

// Package optimizer implements the MPPI inner loop: sample control
// perturbations around a warm-started nominal sequence, roll them through
// the motion model, score the resulting trajectories with the critics, and
// refine the nominal sequence by softmax reweighting.
package optimizer

import (
	"math"
	"time"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/mppi/costmap"
	"go.viam.com/mppi/critics"
	"go.viam.com/mppi/models"
)

// NoSpeedLimit restores the base constraints when passed to SetSpeedLimit.
const NoSpeedLimit = 0.0

const controllerPeriodEps = 1e-6

// Optimizer owns the warm-started nominal control sequence and all rollout
// buffers, and computes one velocity command per EvalControl tick. It is not
// safe for concurrent use; the host serializes reconfiguration with ticks.
type Optimizer struct {
	logger   golog.Logger
	settings models.OptimizerSettings

	costmap       costmap.Costmap
	motionModel   models.MotionModel
	criticManager *critics.CriticManager

	noiseGenerator *NoiseGenerator
	integrator     TrajectoryIntegrator

	state           models.State
	trajectories    models.Trajectories
	controlSequence models.ControlSequence
	costs           []float64
	weights         []float64
	path            models.Path
	criticsData     critics.CriticData

	controlHistory  [2]models.Control
	smoothingEnable bool

	retryCounter int
}

// New constructs an optimizer with the given motion model and critic
// manager, validates the controller period against the model timestep, and
// allocates all rollout buffers.
func New(
	logger golog.Logger,
	settings models.OptimizerSettings,
	motionModel models.MotionModel,
	criticManager *critics.CriticManager,
	cm costmap.Costmap,
) (*Optimizer, error) {
	o := &Optimizer{
		logger:         logger,
		settings:       settings,
		costmap:        cm,
		criticManager:  criticManager,
		noiseGenerator: NewNoiseGenerator(settings.Seed),
	}
	o.setMotionModel(motionModel)
	if settings.ControllerFrequency > 0 {
		if err := o.setOffset(settings.ControllerFrequency); err != nil {
			return nil, err
		}
	}
	o.Reset()
	return o, nil
}

// setOffset decides control-sequence shifting from the controller period:
// equal to model_dt enables it, shorter periods disable it, longer periods
// are rejected because commands past the first would never be executed on
// time.
func (o *Optimizer) setOffset(controllerFrequency float64) error {
	period := 1.0 / controllerFrequency
	switch {
	case period > o.settings.ModelDT+controllerPeriodEps:
		return NewControllerPeriodError(period, o.settings.ModelDT)
	case math.Abs(period-o.settings.ModelDT) < controllerPeriodEps:
		o.logger.Info("controller period equals model_dt, control sequence shifting is ON")
		o.settings.ShiftControlSequence = true
	default:
		o.logger.Warn("controller period is less than model_dt, consider setting them equal")
		o.settings.ShiftControlSequence = false
	}
	return nil
}

// setMotionModel rebinds the motion model and recomputes the tensor layouts
// for its holonomy.
func (o *Optimizer) setMotionModel(m models.MotionModel) {
	o.motionModel = m
	o.state.Idx.SetLayout(m.IsHolonomic())
	o.controlSequence.Idx.SetLayout(m.IsHolonomic())
}

// SetMotionModel rebinds the motion model by name between ticks and resets
// all buffers for the new layout.
func (o *Optimizer) SetMotionModel(name string, minTurningRadius float64) error {
	m, err := models.MotionModelFromName(name, minTurningRadius)
	if err != nil {
		return err
	}
	o.setMotionModel(m)
	o.Reset()
	return nil
}

// IsHolonomic reports whether the active motion model permits lateral motion.
func (o *Optimizer) IsHolonomic() bool { return o.motionModel.IsHolonomic() }

// Settings returns the active settings.
func (o *Optimizer) Settings() models.OptimizerSettings { return o.settings }

// SetSmoothing toggles Savitzky-Golay smoothing of the refined control
// sequence before command extraction.
func (o *Optimizer) SetSmoothing(enabled bool) { o.smoothingEnable = enabled }

// Reset reallocates every rollout buffer to the current (batch, horizon)
// dimensions, zeroes the nominal sequence, and rebuilds the noise buffers.
// The hot path allocates nothing; all sizing happens here.
func (o *Optimizer) Reset() {
	s := &o.settings
	o.state.Reset(s.BatchSize, s.TimeSteps)
	o.state.Data.FillCol(o.state.Idx.DT(), s.ModelDT)
	o.controlSequence.Reset(s.TimeSteps)
	o.trajectories.Reset(s.BatchSize, s.TimeSteps)
	o.costs = make([]float64, s.BatchSize)
	o.weights = make([]float64, s.BatchSize)
	o.controlHistory = [2]models.Control{}
	o.noiseGenerator.Reset(s, o.IsHolonomic())
	o.logger.Debug("optimizer reset")
}

// EvalControl runs the full MPPI tick and returns the command to execute
// now. It retries from a reset sequence when a critic raises the fail flag,
// and errors out once the retry budget is exhausted.
func (o *Optimizer) EvalControl(
	pose models.PoseStamped,
	speed models.Twist,
	plan models.Path,
	goalChecker models.GoalChecker,
) (models.TwistStamped, error) {
	o.prepare(pose, speed, plan, goalChecker)

	for {
		o.optimize()
		retry, err := o.fallback(o.criticsData.FailFlag)
		if err != nil {
			return models.TwistStamped{}, err
		}
		if !retry {
			break
		}
	}

	if o.smoothingEnable {
		applySavitzkyGolay(&o.controlSequence, o.controlHistory)
	}
	control := o.controlFromSequence(plan.Stamp)
	o.pushControlHistory(control.Twist)

	if o.settings.ShiftControlSequence {
		o.controlSequence.Shift()
	}
	return control, nil
}

// prepare stages the tick inputs and zeroes the cost accumulator.
func (o *Optimizer) prepare(
	pose models.PoseStamped,
	speed models.Twist,
	plan models.Path,
	goalChecker models.GoalChecker,
) {
	o.state.Pose = pose
	o.state.Speed = speed
	o.path = plan
	for i := range o.costs {
		o.costs[i] = 0
	}
	o.criticsData = critics.CriticData{
		State:        &o.state,
		Trajectories: &o.trajectories,
		Path:         &o.path,
		Costs:        o.costs,
		ModelDT:      o.settings.ModelDT,
		GoalChecker:  goalChecker,
		MotionModel:  o.motionModel,
	}
}

// optimize runs the configured number of sample-score-update iterations.
func (o *Optimizer) optimize() {
	for i := 0; i < o.settings.IterationCount; i++ {
		o.generateNoisedTrajectories()
		o.criticManager.EvalTrajectoriesScores(&o.criticsData)
		o.updateControlSequence()
	}
}

// fallback implements the retry policy: on failure, reset and re-run until
// the per-instance retry counter exceeds the limit. The counter clears on
// any success.
func (o *Optimizer) fallback(fail bool) (bool, error) {
	if !fail {
		o.retryCounter = 0
		return false, nil
	}
	o.Reset()
	o.retryCounter++
	if o.retryCounter > o.settings.RetryAttemptLimit {
		o.retryCounter = 0
		return false, NewOptimizerFailedError()
	}
	// Reset reallocated the cost accumulator; restage it for the retry.
	o.criticsData.Costs = o.costs
	o.logger.Warnf("optimizer failed to find feasible trajectories, retry %d of %d",
		o.retryCounter, o.settings.RetryAttemptLimit)
	return true, nil
}

func (o *Optimizer) generateNoisedTrajectories() {
	o.generateNoisedControls()
	o.applyControlConstraints()
	o.updateStateVelocities(&o.state)
	o.integrator.Integrate(&o.trajectories, &o.settings, &o.state, o.IsHolonomic())
}

// generateNoisedControls writes nominal + noise into the state's control
// columns.
func (o *Optimizer) generateNoisedControls() {
	noises := o.noiseGenerator.Generate()
	batch, steps, dim := noises.Shape()
	cBegin := o.state.Idx.CBegin()
	for b := 0; b < batch; b++ {
		for t := 0; t < steps; t++ {
			noise := noises.Row(b, t)
			row := o.state.Data.Row(b, t)
			for d := 0; d < dim; d++ {
				row[cBegin+d] = o.controlSequence.Data.At(t, d) + noise[d]
			}
		}
	}
}

// applyControlConstraints clips sampled controls to the active constraints
// and lets the motion model enforce its own bounds.
func (o *Optimizer) applyControlConstraints() {
	s := &o.settings
	if o.IsHolonomic() {
		o.state.Data.ClipCol(o.state.Idx.CVY(), -s.Constraints.VY, s.Constraints.VY)
	}
	o.state.Data.ClipCol(o.state.Idx.CVX(), -s.Constraints.VX, s.Constraints.VX)
	o.state.Data.ClipCol(o.state.Idx.CWZ(), -s.Constraints.WZ, s.Constraints.WZ)
	o.motionModel.ApplyConstraints(&o.state)
}

// updateStateVelocities broadcasts the measured speed into row 0 and
// propagates the motion model forward over the horizon.
func (o *Optimizer) updateStateVelocities(state *models.State) {
	batch, steps, _ := state.Data.Shape()
	idx := &state.Idx
	for b := 0; b < batch; b++ {
		first := state.Data.Row(b, 0)
		first[idx.VX()] = state.Speed.VX
		first[idx.WZ()] = state.Speed.WZ
		if idx.IsHolonomic() {
			first[idx.VY()] = state.Speed.VY
		}
		for t := 1; t < steps; t++ {
			o.motionModel.Predict(state.Data.Row(b, t-1), state.Data.Row(b, t), idx)
		}
	}
}

// updateControlSequence performs the defining MPPI update: exponentiate the
// min-shifted negated costs, normalize into softmax weights, and set the
// nominal sequence to the weighted average of the sampled controls.
// Subtracting the min before exp keeps the weights from underflowing.
func (o *Optimizer) updateControlSequence() {
	minCost := floats.Min(o.costs)
	for i, cost := range o.costs {
		o.weights[i] = math.Exp(-(cost - minCost) / o.settings.Temperature)
	}
	floats.Scale(1/floats.Sum(o.weights), o.weights)

	batch, steps, _ := o.state.Data.Shape()
	cBegin := o.state.Idx.CBegin()
	dim := o.controlSequence.Idx.Dim()
	o.controlSequence.Data.Zero()
	for b := 0; b < batch; b++ {
		w := o.weights[b]
		for t := 0; t < steps; t++ {
			row := o.state.Data.Row(b, t)
			for d := 0; d < dim; d++ {
				o.controlSequence.Data.Set(t, d, o.controlSequence.Data.At(t, d)+row[cBegin+d]*w)
			}
		}
	}
}

// controlFromSequence extracts the command to execute now: the first row of
// the nominal sequence, or the second when shifting keeps row 0 pinned to
// the control already being executed. The command is stamped with the plan's
// timestamp and the costmap's base frame.
func (o *Optimizer) controlFromSequence(stamp time.Time) models.TwistStamped {
	offset := 0
	if o.settings.ShiftControlSequence {
		offset = 1
	}
	ctrl := o.controlSequence.ControlAt(offset)
	return models.TwistStamped{
		Twist:   models.Twist{VX: ctrl.VX, VY: ctrl.VY, WZ: ctrl.WZ},
		FrameID: o.costmap.FrameID(),
		Stamp:   stamp,
	}
}

func (o *Optimizer) pushControlHistory(ctrl models.Twist) {
	o.controlHistory[0] = o.controlHistory[1]
	o.controlHistory[1] = models.Control{VX: ctrl.VX, VY: ctrl.VY, WZ: ctrl.WZ}
}

// SetSpeedLimit rescales the active constraints. A percentage limit scales
// all three base bounds by limit/100; an absolute limit sets vx and scales
// vy and wz by the same ratio relative to the base vx. NoSpeedLimit restores
// the base constraints.
func (o *Optimizer) SetSpeedLimit(limit float64, percentage bool) {
	s := &o.settings
	if limit == NoSpeedLimit {
		s.Constraints = s.BaseConstraints
		return
	}
	if percentage {
		ratio := limit / 100.0
		s.Constraints.VX = s.BaseConstraints.VX * ratio
		s.Constraints.VY = s.BaseConstraints.VY * ratio
		s.Constraints.WZ = s.BaseConstraints.WZ * ratio
		return
	}
	ratio := limit / s.BaseConstraints.VX
	s.Constraints.VX = limit
	s.Constraints.VY = s.BaseConstraints.VY * ratio
	s.Constraints.WZ = s.BaseConstraints.WZ * ratio
}

// GetOptimizedTrajectory integrates the nominal sequence alone (batch of
// one) from the last staged pose and speed, for visualization.
func (o *Optimizer) GetOptimizedTrajectory() []models.Pose {
	var state models.State
	state.Idx.SetLayout(o.IsHolonomic())
	state.Reset(1, o.settings.TimeSteps)
	state.Data.FillCol(state.Idx.DT(), o.settings.ModelDT)
	state.Pose = o.state.Pose
	state.Speed = o.state.Speed

	cBegin := state.Idx.CBegin()
	dim := o.controlSequence.Idx.Dim()
	for t := 0; t < o.settings.TimeSteps; t++ {
		row := state.Data.Row(0, t)
		for d := 0; d < dim; d++ {
			row[cBegin+d] = o.controlSequence.Data.At(t, d)
		}
	}
	o.updateStateVelocities(&state)

	var trajectories models.Trajectories
	trajectories.Reset(1, o.settings.TimeSteps)
	o.integrator.Integrate(&trajectories, &o.settings, &state, o.IsHolonomic())

	out := make([]models.Pose, o.settings.TimeSteps)
	for t := range out {
		out[t] = models.Pose{
			X:   trajectories.X(0, t),
			Y:   trajectories.Y(0, t),
			Yaw: trajectories.Yaw(0, t),
		}
	}
	return out
}

// GeneratedTrajectories exposes the last iteration's rollout batch.
func (o *Optimizer) GeneratedTrajectories() *models.Trajectories {
	return &o.trajectories
}

// ControlSequence exposes the warm-started nominal sequence.
func (o *Optimizer) ControlSequence() *models.ControlSequence {
	return &o.controlSequence
}

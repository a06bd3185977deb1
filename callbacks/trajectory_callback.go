package callbacks

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/avsim/scenario-extract/types"
	"github.com/avsim/scenario-extract/util"
)

// TrajectoryCallback replays the trained model once at the end of
// training, recording its actions next to the log-replay ground truth,
// and persists both trajectories with their RMSE logged.
//
// The evaluation environment must implement types.TargetProvider.
type TrajectoryCallback struct {
	SavePath   string
	NamePrefix string

	env    types.EvalEnvironment
	model  types.Model
	logger *log.Logger

	numTimesteps int
	trajectory   *Trajectory
}

func NewTrajectoryCallback(savePath string, env types.EvalEnvironment, model types.Model, logger *log.Logger) *TrajectoryCallback {
	if logger == nil {
		logger = log.Default()
	}
	return &TrajectoryCallback{
		SavePath:   savePath,
		NamePrefix: "rl_model_traj",
		env:        env,
		model:      model,
		logger:     logger,
	}
}

var _ Callback = &TrajectoryCallback{}

func (c *TrajectoryCallback) Init() error {
	return util.EnsureDir(c.SavePath)
}

func (c *TrajectoryCallback) OnStep() (bool, error) {
	c.numTimesteps++
	return true, nil
}

func (c *TrajectoryCallback) OnTrainingEnd() error {
	targets, ok := c.env.(types.TargetProvider)
	if !ok {
		return fmt.Errorf("evaluation environment %T exposes no ground-truth targets", c.env)
	}

	traj := &Trajectory{}
	var pending [2]float64
	hooks := RolloutHooks{
		Before: func(_ int, _ types.Observation) {
			pending = firstTwo(targets.TargetAction())
		},
		After: func(_ int, action types.Action, _ types.StepResult) {
			traj.Append(firstTwo(action), pending)
		},
	}

	_, steps, err := Rollout(c.env, c.model, hooks)
	if err != nil {
		return fmt.Errorf("trajectory rollout: %w", err)
	}
	c.trajectory = traj
	c.logger.Info("trajectory rollout finished", "steps", steps, "rmse", traj.RMSE())

	path := filepath.Join(c.SavePath, fmt.Sprintf("%s_%d_steps.gob", c.NamePrefix, c.numTimesteps))
	if err := util.SaveGob(path, traj); err != nil {
		return fmt.Errorf("saving trajectory: %w", err)
	}
	return nil
}

// Trajectory returns the recorded rollout, nil before OnTrainingEnd.
func (c *TrajectoryCallback) Trajectory() *Trajectory {
	return c.trajectory
}

func firstTwo(a types.Action) [2]float64 {
	var out [2]float64
	for i := 0; i < len(a) && i < 2; i++ {
		out[i] = a[i]
	}
	return out
}

package callbacks

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/avsim/scenario-extract/types"
	"github.com/avsim/scenario-extract/util"
)

// VizCallback rolls the current model through a separate evaluation
// environment every SaveFreq steps and persists the simulator outputs
// of the final step for offline visualization.
//
// When the training loop runs multiple environments, each OnStep call
// corresponds to that many environment steps; scale SaveFreq
// accordingly.
type VizCallback struct {
	SaveFreq   int
	SavePath   string
	NamePrefix string

	env    types.EvalEnvironment
	model  types.Model
	logger *log.Logger

	nCalls       int
	numTimesteps int
}

func NewVizCallback(saveFreq int, savePath string, env types.EvalEnvironment, model types.Model, logger *log.Logger) *VizCallback {
	if logger == nil {
		logger = log.Default()
	}
	return &VizCallback{
		SaveFreq:   saveFreq,
		SavePath:   savePath,
		NamePrefix: "rl_model_viz",
		env:        env,
		model:      model,
		logger:     logger,
	}
}

var _ Callback = &VizCallback{}

func (c *VizCallback) Init() error {
	return util.EnsureDir(c.SavePath)
}

func (c *VizCallback) OnStep() (bool, error) {
	c.nCalls++
	c.numTimesteps++
	if c.SaveFreq <= 0 || c.nCalls%c.SaveFreq != 0 {
		return true, nil
	}

	last, steps, err := Rollout(c.env, c.model, RolloutHooks{})
	if err != nil {
		return false, fmt.Errorf("viz rollout: %w", err)
	}
	if last.Outputs == nil {
		c.logger.Warn("rollout produced no outputs to save", "steps", steps)
		return true, nil
	}

	path := filepath.Join(c.SavePath, fmt.Sprintf("%s_%d_steps.gob", c.NamePrefix, c.numTimesteps))
	c.logger.Debug("saving rollout outputs", "path", path, "steps", steps)
	if err := util.SaveGob(path, last.Outputs); err != nil {
		return false, fmt.Errorf("saving rollout outputs: %w", err)
	}
	return true, nil
}

func (c *VizCallback) OnTrainingEnd() error {
	return nil
}

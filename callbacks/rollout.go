package callbacks

import (
	"fmt"

	"github.com/avsim/scenario-extract/types"
)

// MaxRolloutSteps bounds a single evaluation rollout.
const MaxRolloutSteps = 350

// RolloutHooks observe a rollout. Before fires ahead of each model
// prediction, After once the step result is known.
type RolloutHooks struct {
	Before func(step int, obs types.Observation)
	After  func(step int, action types.Action, res types.StepResult)
}

// Rollout resets env and drives model through it until the episode is
// done or MaxRolloutSteps is reached. It returns the last step result
// and the number of executed steps.
func Rollout(env types.EvalEnvironment, model types.Model, hooks RolloutHooks) (types.StepResult, int, error) {
	obs, err := env.Reset()
	if err != nil {
		return types.StepResult{}, 0, fmt.Errorf("reset: %w", err)
	}

	var last types.StepResult
	steps := 0
	for i := 0; i < MaxRolloutSteps; i++ {
		if hooks.Before != nil {
			hooks.Before(i, obs)
		}
		action, err := model.Predict(obs, true)
		if err != nil {
			return last, steps, fmt.Errorf("predict at step %d: %w", i, err)
		}
		next, res, err := env.Step(action)
		if err != nil {
			return last, steps, fmt.Errorf("step %d: %w", i, err)
		}
		if hooks.After != nil {
			hooks.After(i, action, res)
		}
		last = res
		obs = next
		steps = i + 1
		if res.Done {
			break
		}
	}
	return last, steps, nil
}

package types

// Observation is the flat feature vector a model consumes.
type Observation []float64

// Action is the flat control vector a model emits.
type Action []float64

// Model wraps the inference call of a trained policy.
type Model interface {
	Predict(obs Observation, deterministic bool) (Action, error)
}

// StepResult carries the outcome of a single environment step.
// Outputs holds whatever the simulator wants persisted at the end of a
// rollout; callbacks serialize it without looking inside.
type StepResult struct {
	Reward  float64
	Done    bool
	Outputs interface{}
}

// EvalEnvironment is the rollout surface of a closed-loop simulator.
type EvalEnvironment interface {
	// Reset starts a new episode
	Reset() (Observation, error)
	// Step applies an action and advances the simulation
	Step(Action) (Observation, StepResult, error)
}

// TargetProvider exposes the ground-truth next action of the underlying
// log replay, for environments that have one. The trajectory callback
// requires it.
type TargetProvider interface {
	TargetAction() Action
}

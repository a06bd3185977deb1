package sim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/avsim/scenario-extract/types"
)

// Env is a minimal closed-loop ego environment: an episode follows a
// reference path and actions are per-step displacements. The recorded
// path displacements double as the log-replay ground truth.
type Env struct {
	cfg Config
	rng *rand.Rand

	path    [][2]float64
	pos     [2]float64
	step    int
	outputs *RolloutOutput
}

// RolloutOutput is the simulator output persisted by the viz callback.
type RolloutOutput struct {
	Steps     int
	Positions [][2]float64
	Reference [][2]float64
}

func NewEnv(cfg Config) *Env {
	return &Env{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

var (
	_ types.EvalEnvironment = &Env{}
	_ types.TargetProvider  = &Env{}
)

func (e *Env) Reset() (types.Observation, error) {
	horizon := e.cfg.Horizon
	if horizon <= 0 {
		horizon = DefaultConfig().Horizon
	}

	heading := e.rng.Float64() * 2 * math.Pi
	e.path = make([][2]float64, horizon+1)
	pos := [2]float64{0, 0}
	e.path[0] = pos
	for i := 1; i <= horizon; i++ {
		heading += (e.rng.Float64() - 0.5) * 0.1
		pos[0] += math.Cos(heading)
		pos[1] += math.Sin(heading)
		e.path[i] = pos
	}

	e.pos = e.path[0]
	e.step = 0
	e.outputs = &RolloutOutput{Reference: append([][2]float64{}, e.path...)}
	return e.observation(), nil
}

// TargetAction is the displacement that keeps the ego on the reference
// path for the next step.
func (e *Env) TargetAction() types.Action {
	if len(e.path) == 0 || e.step >= len(e.path)-1 {
		return types.Action{0, 0}
	}
	next := e.path[e.step+1]
	return types.Action{next[0] - e.pos[0], next[1] - e.pos[1]}
}

func (e *Env) Step(a types.Action) (types.Observation, types.StepResult, error) {
	if e.outputs == nil {
		return nil, types.StepResult{}, fmt.Errorf("sim: Step before Reset")
	}
	if len(a) < 2 {
		return nil, types.StepResult{}, fmt.Errorf("sim: action needs 2 dims, got %d", len(a))
	}
	if e.step >= len(e.path)-1 {
		return nil, types.StepResult{}, fmt.Errorf("sim: episode already finished")
	}

	e.pos[0] += a[0]
	e.pos[1] += a[1]
	e.step++
	e.outputs.Steps = e.step
	e.outputs.Positions = append(e.outputs.Positions, e.pos)

	ref := e.path[e.step]
	dist := math.Hypot(e.pos[0]-ref[0], e.pos[1]-ref[1])
	res := types.StepResult{
		Reward:  -dist,
		Done:    e.step >= len(e.path)-1,
		Outputs: e.snapshot(),
	}
	return e.observation(), res, nil
}

// snapshot copies the accumulated outputs so callers can hold on to a
// step result after the episode advances.
func (e *Env) snapshot() *RolloutOutput {
	return &RolloutOutput{
		Steps:     e.outputs.Steps,
		Positions: append([][2]float64{}, e.outputs.Positions...),
		Reference: append([][2]float64{}, e.outputs.Reference...),
	}
}

// observation is the offset to the next reference point plus the
// episode progress.
func (e *Env) observation() types.Observation {
	next := e.path[len(e.path)-1]
	if e.step < len(e.path)-1 {
		next = e.path[e.step+1]
	}
	return types.Observation{
		next[0] - e.pos[0],
		next[1] - e.pos[1],
		float64(e.step) / float64(len(e.path)-1),
	}
}

// OracleModel follows the environment's ground-truth targets, with
// optional gaussian noise to mimic an imperfect policy.
type OracleModel struct {
	targets types.TargetProvider
	noise   float64
	rng     *rand.Rand
}

func NewOracleModel(targets types.TargetProvider, noise float64, seed uint64) *OracleModel {
	return &OracleModel{
		targets: targets,
		noise:   noise,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

var _ types.Model = &OracleModel{}

func (m *OracleModel) Predict(_ types.Observation, deterministic bool) (types.Action, error) {
	target := m.targets.TargetAction()
	action := make(types.Action, len(target))
	copy(action, target)
	if !deterministic || m.noise > 0 {
		for i := range action {
			action[i] += m.rng.NormFloat64() * m.noise
		}
	}
	return action, nil
}

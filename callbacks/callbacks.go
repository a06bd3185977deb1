// Package callbacks provides training-loop hooks that evaluate the
// current policy in a separate environment and persist the results.
package callbacks

import "fmt"

// Callback mirrors the hook surface of the training loop that owns it:
// Init once before training, OnStep after every environment step,
// OnTrainingEnd when the loop finishes. OnStep returning false stops
// the training loop.
type Callback interface {
	Init() error
	OnStep() (bool, error)
	OnTrainingEnd() error
}

// Drive pushes n timesteps through the callbacks and fires
// OnTrainingEnd, standing in for the external training loop.
func Drive(n int, cbs ...Callback) error {
	for _, cb := range cbs {
		if err := cb.Init(); err != nil {
			return fmt.Errorf("callback init: %w", err)
		}
	}
	for i := 0; i < n; i++ {
		for _, cb := range cbs {
			cont, err := cb.OnStep()
			if err != nil {
				return fmt.Errorf("callback step %d: %w", i, err)
			}
			if !cont {
				return nil
			}
		}
	}
	for _, cb := range cbs {
		if err := cb.OnTrainingEnd(); err != nil {
			return fmt.Errorf("callback end: %w", err)
		}
	}
	return nil
}

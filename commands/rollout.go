package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avsim/scenario-extract/callbacks"
	"github.com/avsim/scenario-extract/sim"
	"github.com/avsim/scenario-extract/viz"
)

func RolloutCommand() *cobra.Command {
	var (
		saveFreq int
		steps    int
		noise    float64
	)
	cmd := &cobra.Command{
		Use:   "rollout",
		Short: "Run the evaluation callbacks against the synthetic environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			env := sim.NewEnv(sim.DefaultConfig())
			model := sim.NewOracleModel(env, noise, 11)

			vizCb := callbacks.NewVizCallback(saveFreq, filepath.Join(savePath, "viz"), env, model, logger)
			trajCb := callbacks.NewTrajectoryCallback(filepath.Join(savePath, "traj"), env, model, logger)
			if err := callbacks.Drive(steps, vizCb, trajCb); err != nil {
				return err
			}

			plotPath := filepath.Join(savePath, "traj", "comparison.png")
			if err := viz.SaveTrajectoryPlot(plotPath, trajCb.Trajectory()); err != nil {
				return err
			}
			logger.Info("trajectory comparison written", "path", plotPath)
			return nil
		},
	}
	cmd.Flags().IntVar(&saveFreq, "save-freq", 100, "Training steps between viz rollouts")
	cmd.Flags().IntVar(&steps, "steps", 300, "Training steps to emulate")
	cmd.Flags().Float64Var(&noise, "noise", 0.05, "Gaussian action noise of the oracle model")
	return cmd
}

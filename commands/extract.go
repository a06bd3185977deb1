package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/avsim/scenario-extract/cache"
	"github.com/avsim/scenario-extract/extract"
	"github.com/avsim/scenario-extract/sim"
	"github.com/avsim/scenario-extract/util"
	"github.com/avsim/scenario-extract/viz"
)

func ExtractCommand() *cobra.Command {
	var noHTML bool
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract packed scene features and write gob/HTML artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := []extract.ExtractorOption{extract.WithLogger(logger)}
			if redisAddr != "" {
				rc := cache.NewRedisCache(redisAddr, time.Hour)
				defer rc.Close()
				opts = append(opts, extract.WithCache(rc))
			}
			ex := extract.NewExtractor(sim.NewRasterizer(sim.DefaultConfig()), extract.NewProps(cfg), opts...)

			sceneIDs := make([]int, numScenes)
			for i := range sceneIDs {
				sceneIDs[i] = i
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			batch, report, err := ex.ExtractScenes(ctx, sceneIDs)
			if err != nil {
				return err
			}
			logger.Info("extraction finished",
				"scenes", report.Scenes,
				"dropped_agents", report.DroppedAgents)

			if err := util.WriteToFile(filepath.Join(savePath, "report.txt"), report.String()); err != nil {
				return err
			}
			if err := (viz.GobSink{}).Accept(batch, filepath.Join(savePath, "scene_batch.gob")); err != nil {
				return err
			}
			if !noHTML {
				if err := (viz.HTMLSink{}).Accept(batch, filepath.Join(savePath, "plots")); err != nil {
					return err
				}
			}
			logger.Info("artifacts written", "path", savePath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noHTML, "no-html", false, "Skip the per-scene HTML plots")
	return cmd
}

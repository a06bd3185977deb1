// Package commands wires the extraction and rollout pipelines into the
// command line interface.
package commands

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/avsim/scenario-extract/config"
)

var (
	configPath string
	savePath   string
	numScenes  int
	redisAddr  string
	verbose    bool
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "scenario-extract",
		Short: "Extract fixed-size scene features and run evaluation rollouts",
	}
	rootCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML file with data generation parameters")
	rootCommand.PersistentFlags().StringVarP(&savePath, "save", "s", "results", "Folder for extracted artifacts")
	rootCommand.PersistentFlags().IntVarP(&numScenes, "scenes", "n", 10, "Number of scenes to extract")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", "", "Optional redis address for the scene feature cache")
	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	// adding the subcommands here
	rootCommand.AddCommand(ExtractCommand())
	rootCommand.AddCommand(RolloutCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

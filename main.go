package main

import (
	"fmt"

	"github.com/avsim/scenario-extract/commands"
)

// main entry point to the extraction and rollout pipelines
func main() {
	// rootCommand defines a command line argument parser (some arguments and a subcommand to run)
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}

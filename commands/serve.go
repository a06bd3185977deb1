package commands

import (
	"github.com/spf13/cobra"

	"github.com/avsim/scenario-extract/viewer"
)

func ServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extracted artifacts over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewer.NewServer(savePath, newLogger()).Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	return cmd
}

// Package serve implements the serve sub-command which runs the HTTP API.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/healthdiary-go/internal/conf"
	"github.com/tphakala/healthdiary-go/internal/server"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the health diary HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.Run(cmd.Context(), settings)
		},
	}
}

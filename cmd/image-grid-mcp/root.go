package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-grid-mcp/internal/logging"
	"github.com/ironsheep/image-grid-mcp/internal/server"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "image-grid-mcp",
		Short: "Split images into 3-column profile grids",
		Long: `image-grid-mcp cuts one picture into 1080x1350 tiles that reassemble into
the original on a 3-column profile page.

Run without a subcommand (or with "serve") to start the MCP server on
stdin/stdout. Use "split" to render and export a grid directly.

Environment variables:
  IMAGE_GRID_LOG_LEVEL=debug   Log level (debug, info, warn, error)
  IMAGE_GRID_CACHE_TTL=30m     How long the server keeps renders`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := os.Getenv(logging.EnvLogLevel)
			if logLevel != "" {
				level = logLevel
			}
			// stdout is reserved for MCP and command output.
			logging.SetLogger(logging.New(os.Stderr, logging.ParseLevel(level)))
		},
		RunE: runServe,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides "+logging.EnvLogLevel+")")
	root.AddCommand(newServeCmd(), newSplitCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	server.Version = Version
	logging.Logger().Info("image grid MCP server starting",
		"version", Version,
		"built", BuildTime,
		"commit", GitCommit,
	)
	return server.New().Run()
}

// Command glossrank-ctl is the operator CLI for schema, cache and scorer chores
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"glossrank/internal/platform/logger"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("glossrank-ctl failed")
		stop()
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "glossrank-ctl",
		Short:         "Operate the glossrank ranking engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(
		migrateCommand(),
		trendingCommand(),
		featuresCommand(),
		recommendCommand(),
		scorerCommand(),
		servelogCommand(),
		versionCommand(),
	)
	return root
}

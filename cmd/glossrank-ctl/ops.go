package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"glossrank/internal/adapters/scorer"
	"glossrank/internal/core/version"
	"glossrank/internal/platform/config"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func scorerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorer",
		Short: "Talk to the remote scoring service",
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Probe the remote scorer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := scorer.NewClient(scorer.FromConfig(config.New()))
			ok := c.IsAvailable(cmd.Context())
			if err := printJSON(cmd.OutOrStdout(), map[string]any{"base_url": c.BaseURL(), "available": ok}); err != nil {
				return err
			}
			if !ok {
				return errors.New("scorer unavailable")
			}
			return nil
		},
	}

	var file string
	train := &cobra.Command{
		Use:   "train",
		Short: "Forward a JSON training batch from a file or stdin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if !json.Valid(body) {
				return errors.New("training batch is not valid json")
			}
			c := scorer.NewClient(scorer.FromConfig(config.New()))
			out := c.SubmitTrainingBatch(cmd.Context(), body)
			if !out.OK() {
				return fmt.Errorf("training batch not accepted: %s", out)
			}
			return printJSON(cmd.OutOrStdout(), out.Payload)
		},
	}
	train.Flags().StringVarP(&file, "file", "f", "-", "json file, - for stdin")

	cmd.AddCommand(health, train)
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

var errNoServeLog = errors.New("serve log disabled: enable SERVICE_CLICKHOUSE_ENABLED and CORE_SERVELOG_ENABLED")

func servelogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servelog",
		Short: "Manage the clickhouse serve log",
	}

	var since time.Duration
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Count served lists per operation and source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				if a.servelog.Service == nil {
					return errNoServeLog
				}
				rows, err := a.servelog.Service.Summary(cmd.Context(), time.Now().Add(-since))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rows)
			})
		},
	}
	summary.Flags().DurationVar(&since, "since", 24*time.Hour, "look back window")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the serve log table",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd.Context(), func(a *app) error {
					if a.servelog.Service == nil {
						return errNoServeLog
					}
					return a.servelog.Service.Repo.EnsureSchema(cmd.Context())
				})
			},
		},
		summary,
	)
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), version.Info("glossrank-ctl"))
		},
	}
}

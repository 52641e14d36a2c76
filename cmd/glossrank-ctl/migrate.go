package main

import (
	"fmt"

	"glossrank/internal/platform/config"
	"glossrank/internal/platform/store/migrations"

	"github.com/spf13/cobra"
)

func dbURL() string { return config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL") }

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the postgres schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return migrations.Down(dbURL(), steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrations.Up(dbURL())
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, dirty, err := migrations.Version(dbURL())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return err
			},
		},
	)
	return cmd
}

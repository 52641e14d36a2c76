package main

import (
	"fmt"
	"strconv"

	features "glossrank/internal/services/features/domain"

	"github.com/spf13/cobra"
)

func parseUser(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func trendingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Inspect or precompute trending lists",
	}

	var limit int
	show := &cobra.Command{
		Use:   "show",
		Short: "Compute and print the trending list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				r, err := a.trending.Calculator.Trending(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	}
	show.Flags().IntVar(&limit, "limit", 10, "list size")

	warm := &cobra.Command{
		Use:   "warm",
		Short: "Recompute and cache trending lists for every configured size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out, err := a.trending.Service.Warm(cmd.Context(), a.warmTTL)
				if perr := printJSON(cmd.OutOrStdout(), out); perr != nil && err == nil {
					err = perr
				}
				return err
			})
		},
	}

	cmd.AddCommand(show, warm)
	return cmd
}

func featuresCommand() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "features <user-id>",
		Short: "Print the feature snapshot for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUser(args[0])
			if err != nil {
				return err
			}
			v := features.DiagnosticVariant()
			if remote {
				v = features.RemoteVariant()
			}
			return withApp(cmd.Context(), func(a *app) error {
				snap, err := a.features.Builder.Build(cmd.Context(), id, v)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), snap)
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "build the variant sent to the remote scorer")
	return cmd
}

func recommendCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recommend <user-id>",
		Short: "Print personalized recommendations for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUser(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				return printJSON(cmd.OutOrStdout(), a.recommend.Recommender.Personalized(cmd.Context(), id, limit))
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "list size")
	return cmd
}

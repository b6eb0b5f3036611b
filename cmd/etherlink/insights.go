package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"etherlink/application/insights"
	"etherlink/application/queries"
	"etherlink/infrastructure/di"
)

func insightsCMD(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print the desktop insights snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				snapshot, err := c.QueryBus.Ask(ctx, queries.GetInsightsQuery{})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), snapshot)
			})
		},
	}
}

func watchCMD(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a snapshot on every change, including other processes' changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				out := json.NewEncoder(cmd.OutOrStdout())
				emit := func(s insights.Snapshot) {
					if err := out.Encode(s); err != nil {
						c.Logger.Warn("Failed to print snapshot", zap.Error(err))
					}
				}

				stop := c.Live.OnChange(emit)
				defer stop()
				emit(c.Live.Start(ctx))

				return c.Bus.RelayExternal(ctx, c.ExternalChanges())
			})
		},
	}
}

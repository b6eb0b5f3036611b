package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"etherlink/application/queries"
	"etherlink/infrastructure/di"
)

func castCMD(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "cast <spell>",
		Short: "Cast a spell at the Etherlink terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				result, err := c.QueryBus.Ask(ctx, queries.CastSpellQuery{Input: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.(queries.SpellResult).Response)
				return nil
			})
		},
	}
}

func grimoireCMD(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "grimoire [page]",
		Short: "Read a page of the grimoire",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("page must be an integer: %w", err)
				}
				page = n
			}
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				result, err := c.QueryBus.Ask(ctx, queries.GetGrimoirePageQuery{Page: page})
				if err != nil {
					return err
				}
				p := result.(queries.GrimoirePageResult)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d/%d)\n\n%s\n", p.Rune, p.Title, p.Index+1, p.Total, p.Content)
				return nil
			})
		},
	}
}

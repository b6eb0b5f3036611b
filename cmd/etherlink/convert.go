package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"etherlink/application/commands"
	"etherlink/application/queries"
	"etherlink/infrastructure/di"
)

func convertCMD(load loader) *cobra.Command {
	var record bool
	convert := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value must be a number: %w", err)
			}
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				result, err := c.QueryBus.Ask(ctx, queries.ConvertQuery{Value: value, From: args[1], To: args[2]})
				if err != nil {
					return err
				}
				r := result.(queries.ConversionResult)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", args[0], r.From, r.Formatted, r.To)

				if !record {
					return nil
				}
				if _, err := c.CommandBus.Send(ctx, commands.RecordConversionCommand{}); err != nil {
					return err
				}
				return nil
			})
		},
	}
	convert.Flags().BoolVar(&record, "record", false, "count this conversion in the synthesis insights")
	return convert
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etherlink/application/queries"
	"etherlink/infrastructure/di"
)

func exportCMD(load loader) *cobra.Command {
	var output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the rune archive as JSON to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				result, err := c.QueryBus.Ask(ctx, queries.ExportRunesQuery{})
				if err != nil {
					return err
				}
				export := result.(queries.ExportResult)

				if output == "" {
					_, err = cmd.OutOrStdout().Write(export.Data)
					return err
				}
				if output == "." {
					output = export.Filename
				}
				if err := os.WriteFile(output, export.Data, 0o644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Archive exported to %s\n", output)
				return nil
			})
		},
	}
	export.Flags().StringVarP(&output, "output", "o", "", `output file; "." uses the default export filename`)
	return export
}

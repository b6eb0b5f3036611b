package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"etherlink/infrastructure/config"
	"etherlink/infrastructure/di"
)

// loader reads the configuration named by the --config flag
type loader func() (*config.Config, error)

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "etherlink",
		Short:        "Etherlink desktop data layer",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./etherlink.yaml)")

	load := func() (*config.Config, error) { return config.Load(cfgPath) }
	root.AddCommand(
		serveCMD(load),
		insightsCMD(load),
		watchCMD(load),
		exportCMD(load),
		castCMD(load),
		grimoireCMD(load),
		convertCMD(load),
	)
	return root
}

// withContainer wires the application for the duration of fn
func withContainer(ctx context.Context, load loader, fn func(ctx context.Context, c *di.Container) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, container)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

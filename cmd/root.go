package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jsonwatch/internal/config"
	"github.com/oakwood-commons/jsonwatch/internal/ui"
	"github.com/oakwood-commons/jsonwatch/pkg/logger"
	"github.com/oakwood-commons/jsonwatch/pkg/settings"
)

// runViewer starts a viewer session. Tests swap it for a recorder.
type runViewer func(ctx context.Context, opts ui.Options, c ui.Collaborators) error

var rootCmd = newRootCmd(ui.Run, ui.Collaborators{})

func newRootCmd(run runViewer, collab ui.Collaborators) *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file] [creature]",
		Short: "Watch a JSON file and mark the values that drifted from its first snapshot",
		Long: `jsonwatch flattens a JSON document into key/value rows, re-reads it as it
changes and colors every value that differs from the snapshot taken at start.
One changed key at a time carries a marker glyph that hops every few seconds.

The creature argument picks the glyph: anything starting with "w" selects the
alternate marker. Defaults come from the config file at $JSONWATCH_CONFIG or
$XDG_CONFIG_HOME/jsonwatch/config.{yaml,toml}.`,
		Example:       "  jsonwatch\n  jsonwatch ./Context/conjuration_log.json\n  jsonwatch ./state.json wizard\n",
		Args:          cobra.MaximumNArgs(2),
		Version:       settings.VersionInformation.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath := config.ResolvePath()
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			rs := settings.NewCliParams(cfg.File)
			if len(args) > 0 && args[0] != "" {
				rs.File = args[0]
			}
			if len(args) > 1 {
				rs.Creature = args[1]
			}
			rs.ConfigPath = configPath
			rs.LogFile = cfg.LogFile()
			rs.LogLevel = cfg.Log.Level
			rs.NoColor = cfg.NoColor || os.Getenv("NO_COLOR") != ""

			lgr, err := logger.Get(logger.Options{Level: rs.LogLevel, Path: rs.LogFile})
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			lgr = logger.WithValues(lgr, logger.FileKey, rs.File)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, rs)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rs, ok := settings.FromContext(ctx)
			if !ok {
				return fmt.Errorf("run settings missing from context")
			}
			opts := ui.OptionsFromConfig(cfg, rs.File, rs.Creature)
			opts.NoColor = rs.NoColor

			c := collab
			c.Log = *logger.FromContext(ctx)
			c.Log.V(1).Info("starting viewer", "config", rs.ConfigPath, "marker", opts.Marker)
			return run(ctx, opts, c)
		},
	}
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

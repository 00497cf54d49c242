// Package cli implements the vitalchart command tree.
package cli

import (
	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/config"
	"codeberg.org/mutker/vitalchart/internal/logger"
)

// RootOptions holds the configuration loaded for every command.
type RootOptions struct {
	ConfigFile string
	Config     *config.Config
}

// NewRootCommand creates the root command of the vitalchart CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vitalchart",
		Short: "Render wearable health metrics as time-series charts",
		Long: `vitalchart draws one health metric over time with threshold zones,
gap markers and imputed-data styling. Input is the JSON document of the
data service, either from a file or from the local sample database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to the config file")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewGapsCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewCursorCommand(opts))
	cmd.AddCommand(NewProfilesCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	var loadOpts []config.Option
	if o.ConfigFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.ConfigFile))
	}

	cfg, err := config.Load(cmd.Flags(), loadOpts...)
	if err != nil {
		return err
	}
	o.Config = cfg

	logger.InitWithOutput(cmd.ErrOrStderr(), cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
			logger.SetLogLevel(level)
		}
	}
	logger.Debug().Str("command", cmd.Name()).Msg("Config loaded")

	return nil
}

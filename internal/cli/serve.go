package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/pid"
	"codeberg.org/mutker/vitalchart/internal/server"
	"codeberg.org/mutker/vitalchart/internal/store"
)

type serveOptions struct {
	pidDir  string
	noStore bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart rendering over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.pidDir, "pid-dir", "", "Directory of the PID file (default: temp dir)")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "Serve without the sample database")

	return cmd
}

func runServe(cmd *cobra.Command, root *RootOptions, opts *serveOptions) error {
	pidFile := pid.New(opts.pidDir)
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logger.Error().Err(err).Msg("Failed to remove PID file")
		}
	}()

	var repo store.Repository
	if !opts.noStore {
		r, err := openStore(root)
		if err != nil {
			return err
		}
		defer r.Close()
		repo = r
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := root.Config
	srv := server.New(cfg.View(), cfg.Format, repo, logger.New())
	return srv.Run(ctx, cfg.Listen)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

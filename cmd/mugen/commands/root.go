package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"mugen/internal/app"
	"mugen/internal/services/session"
)

type options struct {
	api     string
	timeout time.Duration
	retries uint64
	dev     bool

	app *app.App
}

// Execute runs the CLI with os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "mugen",
		Short:        "Client for the mugen encrypted API session",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("api") {
				cfg.APIBaseURL = o.api
			}
			if flags.Changed("timeout") {
				cfg.HandshakeTimeout = o.timeout
			}
			if flags.Changed("retries") {
				cfg.HandshakeRetries = o.retries
			}
			if flags.Changed("dev") {
				cfg.Development = o.dev
			}

			o.app, err = app.New(cfg, "mugen")
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.app != nil {
				o.app.Close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.api, "api", app.DefaultAPIBaseURL, "backend base URL (env API_BASE_URL)")
	pf.DurationVar(&o.timeout, "timeout", session.DefaultHandshakeTimeout, "handshake timeout (env HANDSHAKE_TIMEOUT)")
	pf.Uint64Var(&o.retries, "retries", 0, "extra handshake attempts with backoff (env HANDSHAKE_RETRIES)")
	pf.BoolVar(&o.dev, "dev", false, "human-readable debug logging (env DEVELOPMENT)")

	root.AddCommand(handshakeCmd(o), sealCmd(o), echoCmd(o), fingerprintCmd())
	return root
}

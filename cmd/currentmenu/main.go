package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mchmarny/currentmenu/pkg/config"
	"github.com/mchmarny/currentmenu/pkg/logger"
	"github.com/mchmarny/currentmenu/pkg/server"
)

const name = "currentmenu"

var (
	version = "dev"     // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// options shared by all commands
type rootOptions struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          name,
		Short:        "Renders the part of a menu around the current page",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger.SetDefaultLoggerWithLevel(name, version, cfg.Log.Level)
			opts.cfg = cfg

			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", name, version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default .currentmenu.yaml)")
	pf.String("file", "", "YAML site document to serve menus from")
	pf.String("redis-url", "", "Redis URL to serve menus from")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newImportCmd(opts))

	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the block render and editor endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts.cfg)
		},
	}

	cmd.Flags().Int("port", server.DefaultPort, "port to run the server on")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meshwire/meshwire/internal/config"
	"github.com/meshwire/meshwire/internal/engine"
)

var (
	// Global flags
	cfgFile string
	debug   bool
)

// registry is built once at startup; a duplicate descriptor is a programming
// defect and panics before any command runs.
var registry = config.MustRegistry()

var rootCmd = &cobra.Command{
	Use:   "meshwire",
	Short: "Peer-to-peer secure networking daemon",
	Long: `Meshwire establishes secure peer-to-peer networks over untrusted
transports. Peers authenticate each other with X.509 certificates and
exchange traffic through a virtual network adapter, with optional
switch-style or hub-style forwarding and relaying between peers that
cannot reach each other directly.

Configuration is resolved once at startup from the command line, an
optional configuration file and built-in defaults, in that order of
precedence.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runDaemon,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "configuration_file", "c", "", "the configuration file to use")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	config.AddFlags(rootCmd.Flags(), registry)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger := newLogger(debug)

	cliValues, err := config.CollectFlags(registry, cmd.Flags())
	if err != nil {
		return err
	}

	path, err := config.ResolveSource(cfgFile, logger)
	if err != nil {
		return err
	}

	raw, err := config.Load(registry, cliValues, path)
	if err != nil {
		return err
	}

	assembler := &config.Assembler{Logger: logger}
	aggregate, err := assembler.Assemble(raw)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return engine.New(aggregate, logger).Run(ctx)
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

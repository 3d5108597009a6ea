// Package cmd holds the forcegraph command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/config"
)

var version = "0.3.0"

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	debug      bool
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		Bad.Fprintf(os.Stderr, "forcegraph: %v\n", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "forcegraph",
		Short: "Interactive force-directed graph editor",
		Long: Brand.Sprint("forcegraph") + ": place vertices, draw arcs and watch the layout settle\n" +
			Subtle.Sprint("Run the terminal editor, render headless frames or search for cliques"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("forcegraph {{ .Version }}\n")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default "+config.Path()+")")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		runCmd(flags),
		renderCmd(flags),
		cliqueCmd(flags),
	)
	return root
}

// load reads the config and builds the logger for a command.
// Logs go to w unless the config names a file.
func (f *globalFlags) load(w io.Writer) (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}

	closer := func() {}
	if cfg.Log.File != "" {
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = file
		closer = func() { file.Close() }
	}

	logger, err := newLogger(cfg, w, f.debug)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}

// newLogger builds a slog logger from the log section
func newLogger(cfg *config.Config, w io.Writer, addSource bool) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}

	var handler slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

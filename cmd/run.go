package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/server"
	"github.com/TFMV/forcegraph/tui"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var (
		seed        seedFlags
		tps         int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive terminal editor",
		Long: "Open the interactive terminal editor.\n\n" +
			"Right-click places a vertex. In move mode a left drag pins a vertex to the pointer;\n" +
			"in link mode a left drag from one vertex to another records an arc.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the UI, so logs go to the configured file or nowhere
			cfg, logger, closeLog, err := flags.load(io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			seed.apply(cmd, cfg)
			if cmd.Flags().Changed("tps") {
				cfg.Simulation.TicksPerSecond = tps
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			s, err := newSession(cfg, logger, reg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			serverErr := make(chan error, 1)
			if cfg.Metrics.Addr != "" {
				srv := server.New(server.Config{Addr: cfg.Metrics.Addr, Source: s, Gatherer: reg, Logger: logger})
				go func() { serverErr <- srv.Start(ctx) }()
			} else {
				close(serverErr)
			}

			uiErr := tui.Run(s, cfg.Simulation.TicksPerSecond)
			cancel()
			return errors.Join(uiErr, <-serverErr)
		},
	}

	seed.register(cmd)
	cmd.Flags().IntVar(&tps, "tps", 30, "Simulation ticks per second")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /api/graph and /metrics on this address")
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/ingest"
	"github.com/TFMV/forcegraph/render"
	"github.com/TFMV/forcegraph/session"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		seed       seedFlags
		ticks      int
		scriptPath string
		format     string
		output     string
		width      float64
		height     float64
		clique     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the simulation headless and write the final frame",
		Example: "  forcegraph render --seed-kind ring --vertices 8 --ticks 300 -o ring.svg\n" +
			"  forcegraph render --script session.txt --format ascii",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			seed.apply(cmd, cfg)
			if cmd.Flags().Changed("format") {
				cfg.Render.Format = format
			} else if ext := strings.TrimPrefix(filepath.Ext(output), "."); output != "" && ext != "" {
				cfg.Render.Format = ext
			}
			if cmd.Flags().Changed("width") {
				cfg.Render.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Render.Height = height
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var batches []ingest.Batch
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("failed to read script: %w", err)
				}
				processor, err := ingest.GetProcessor("script")
				if err != nil {
					return err
				}
				if batches, err = processor.ProcessData(data); err != nil {
					return fmt.Errorf("%s: %w", scriptPath, err)
				}
			}

			s, err := newSession(cfg, logger, nil)
			if err != nil {
				return err
			}
			if err := simulate(cmd.Context(), s, batches, ticks, logger); err != nil {
				return err
			}
			if clique {
				s.ComputeMaxClique()
				s.Publish()
			}

			out, err := render.Snapshot(s.Snapshot(), cfg.RenderOptions())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			Good.Fprintf(cmd.ErrOrStderr(), "  wrote %s (%d vertices, %d arcs, tick %d)\n",
				output, s.VertexCount(), s.ArcCount(), s.Ticks())
			return nil
		},
	}

	seed.register(cmd)
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 200, "Number of ticks to simulate")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Input script, one batch per tick")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Output format ("+strings.Join(render.Formats, ", ")+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().Float64Var(&width, "width", 800, "Output width")
	cmd.Flags().Float64Var(&height, "height", 600, "Output height")
	cmd.Flags().BoolVar(&clique, "clique", false, "Highlight the greedy clique in the output")
	return cmd
}

// simulate feeds the script batches one per tick and pads with empty ticks.
// A script longer than ticks runs to its end.
func simulate(ctx context.Context, s *session.Session, batches []ingest.Batch, ticks int, logger *slog.Logger) error {
	total := max(ticks, len(batches))
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var batch ingest.Batch
		if i < len(batches) {
			batch = batches[i]
		}
		if err := s.Tick(batch...); err != nil {
			logger.Warn("tick reported an error", "tick", i+1, "error", err)
		}
	}
	logger.Info("simulation finished", "ticks", s.Ticks(), "energy", s.Energy())
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/config"
	"github.com/TFMV/forcegraph/ingest"
	"github.com/TFMV/forcegraph/physics"
	"github.com/TFMV/forcegraph/session"
)

// seedFlags override the [seed] config section
type seedFlags struct {
	kind     string
	vertices int
	seed     int64
}

func (s *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.kind, "seed-kind", "", "Seed graph shape (empty, complete, ring, star, noise)")
	cmd.Flags().IntVar(&s.vertices, "vertices", -1, "Number of seed vertices")
	cmd.Flags().Int64Var(&s.seed, "seed", 0, "Noise seed for vertex placement")
}

func (s *seedFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("seed-kind") {
		cfg.Seed.Kind = s.kind
	}
	if cmd.Flags().Changed("vertices") {
		cfg.Seed.Vertices = s.vertices
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.Seed = s.seed
	}
}

// newSession builds a session from cfg and writes the seed graph into it.
// reg may be nil to skip metrics.
func newSession(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*session.Session, error) {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithViewport(cfg.ViewportSize()),
		session.WithForceEnabled(cfg.Simulation.ForceEnabled),
		session.WithLayout(physics.GetLayoutAlgorithm(cfg.Simulation.Layout, cfg.Simulation.Noise, cfg.Simulation.NoiseSeed)),
	}
	if reg != nil {
		opts = append(opts, session.WithMetrics(session.NewMetrics(reg)))
	}
	s := session.New(opts...)

	if err := ingest.Generate(s, cfg.Seed.Kind, cfg.Seed.Vertices, cfg.Seed.Seed, cfg.Seed.Radius); err != nil {
		return nil, fmt.Errorf("seeding graph: %w", err)
	}
	logger.Debug("seed graph ready", "kind", cfg.Seed.Kind, "vertices", s.VertexCount(), "arcs", s.ArcCount())
	return s, nil
}

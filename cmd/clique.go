package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TFMV/forcegraph/clique"
	"github.com/TFMV/forcegraph/models"
)

func cliqueCmd(flags *globalFlags) *cobra.Command {
	var (
		seed   seedFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "clique",
		Short: "Build a seed graph and print its greedy clique",
		Long: "Build a seed graph and print the clique found by the greedy heuristic.\n" +
			"The result is a clique but not necessarily a maximum one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			seed.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := newSession(cfg, logger, nil)
			if err != nil {
				return err
			}
			result := s.ComputeMaxClique()

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				return enc.Encode(struct {
					Kind     string            `json:"kind"`
					Vertices int               `json:"vertices"`
					Arcs     int               `json:"arcs"`
					Clique   []models.VertexID `json:"clique"`
				}{cfg.Seed.Kind, s.VertexCount(), s.ArcCount(), result})
			}

			field(w, "Graph", fmt.Sprintf("%s (%d vertices, %d arcs)", cfg.Seed.Kind, s.VertexCount(), s.ArcCount()))
			if len(result) == 0 {
				field(w, "Clique", Subtle.Sprint("none (empty graph)"))
				return nil
			}
			parts := make([]string, len(result))
			for i, id := range result {
				parts[i] = fmt.Sprint(id)
			}
			field(w, "Clique", Info.Sprint(strings.Join(parts, " ")))
			field(w, "Size", len(result))
			if clique.IsClique(s.Graph(), result) {
				fmt.Fprintf(w, "  %s\n", Good.Sprint("✓ verified"))
			} else {
				fmt.Fprintf(w, "  %s\n", Bad.Sprint("✗ not a clique"))
			}
			return nil
		},
	}

	seed.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

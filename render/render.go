// Package render draws published session snapshots in several output formats.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/TFMV/forcegraph/models"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format       string  // Output format (svg, ascii, json, dot)
	Width        float64 // Width of the output
	Height       float64 // Height of the output
	Background   string  // Background color, overrides the color scheme
	VertexRadius float64 // Radius of a vertex in world units
	EdgeWidth    float64 // Stroke width of arcs
	FontSize     float64 // Font size for labels
	ShowLabels   bool    // Show vertex ids
	Timestamp    bool    // Include the snapshot time
	ColorScheme  string  // Color scheme (default, dark)
}

// Renderer interface defines methods that all rendering backends must implement
type Renderer interface {
	// Render creates a visualization of the snapshot using the provided options
	Render(snap *models.Snapshot, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer
	Name() string

	// Description returns a description of the renderer
	Description() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:       format,
		Width:        800,
		Height:       600,
		VertexRadius: 50,
		EdgeWidth:    2,
		FontSize:     24,
		ShowLabels:   true,
		Timestamp:    false,
		ColorScheme:  "default",
	}
}

// MaxDimension bounds the output width and height in screen units
const MaxDimension = 10000.0

// ClampDimension limits v to MaxDimension
func ClampDimension(v float64) float64 {
	if !(v <= MaxDimension) {
		return MaxDimension
	}
	return v
}

// Formats lists the output formats understood by GetRenderer
var Formats = []string{"svg", "ascii", "json", "dot"}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "ascii", "txt":
		return &ASCIIRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "dot":
		return &DOTRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Snapshot renders snap with the renderer named by options.Format
func Snapshot(snap *models.Snapshot, options *OutputOptions) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("nothing to render: snapshot is nil")
	}
	if options == nil {
		options = NewDefaultOptions("svg")
	}
	renderer, err := GetRenderer(options.Format)
	if err != nil {
		return nil, err
	}
	return renderer.Render(snap, options)
}

// palette holds the colors of one color scheme
type palette struct {
	Background string
	Vertex     string
	Grabbed    string
	Clique     string
	Arc        string
	CliqueArc  string
	Label      string
}

var schemes = map[string]palette{
	"default": {
		Background: "#f8f8f8",
		Vertex:     "#4285F4",
		Grabbed:    "#FBBC05",
		Clique:     "#EA4335",
		Arc:        "#666666",
		CliqueArc:  "#EA4335",
		Label:      "#ffffff",
	},
	"dark": {
		Background: "#1e1e2e",
		Vertex:     "#89b4fa",
		Grabbed:    "#f9e2af",
		Clique:     "#f38ba8",
		Arc:        "#6c7086",
		CliqueArc:  "#f38ba8",
		Label:      "#11111b",
	},
}

func paletteFor(options *OutputOptions) palette {
	p, ok := schemes[strings.ToLower(options.ColorScheme)]
	if !ok {
		p = schemes["default"]
	}
	if options.Background != "" {
		p.Background = options.Background
	}
	return p
}

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer
func (r *SVGRenderer) Description() string {
	return "Renders snapshots as Scalable Vector Graphics (SVG) for high-quality vector output"
}

// Render creates an SVG representation of the snapshot
func (r *SVGRenderer) Render(snap *models.Snapshot, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer
	colors := paletteFor(options)
	radius := options.VertexRadius

	// fit the view to the vertices, or center it on the origin when empty
	min, max, ok := snap.Bounds()
	if !ok {
		min = models.V(-options.Width/2, -options.Height/2)
		max = models.V(options.Width/2, options.Height/2)
	}
	pad := radius * 2
	vx, vy := min.X-pad, min.Y-pad
	vw, vh := max.X-min.X+2*pad, max.Y-min.Y+2*pad

	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="%g %g %g %g" xmlns="http://www.w3.org/2000/svg">
<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, options.Width, options.Height, vx, vy, vw, vh, vx, vy, vw, vh, colors.Background)

	fmt.Fprintf(&buf, `<defs>
  <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5"
      markerWidth="6" markerHeight="6" orient="auto">
    <path d="M0,0 L10,5 L0,10 z" fill="%s"/>
  </marker>
</defs>
`, colors.Arc)

	for _, a := range snap.Arcs {
		seg, ok := segmentFor(snap, a)
		if !ok {
			continue
		}
		seg, ok = seg.Trim(radius)
		if !ok {
			continue
		}
		color, width := colors.Arc, options.EdgeWidth
		if snap.CliqueArc(a) {
			color, width = colors.CliqueArc, options.EdgeWidth*2
		}
		fmt.Fprintf(&buf, `<line class="arc" x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g" marker-end="url(#arrow)"/>
`, seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, color, width)
	}

	for _, v := range snap.Vertices {
		fill := colors.Vertex
		switch {
		case snap.IsGrabbed(v.ID):
			fill = colors.Grabbed
		case snap.InClique(v.ID):
			fill = colors.Clique
		}
		fmt.Fprintf(&buf, `<circle class="vertex" cx="%g" cy="%g" r="%g" fill="%s" stroke="rgba(0,0,0,0.3)" stroke-width="1"/>
`, v.Position.X, v.Position.Y, radius, fill)

		if options.ShowLabels {
			fmt.Fprintf(&buf, `<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="%s" text-anchor="middle" dominant-baseline="central">%d</text>
`, v.Position.X, v.Position.Y, options.FontSize, colors.Label, v.ID)
		}
	}

	if options.Timestamp && !snap.CreatedAt.IsZero() {
		fmt.Fprintf(&buf, `<text x="%g" y="%g" font-family="sans-serif" font-size="%g" fill="#808080">tick %d | %s</text>
`, vx+5, vy+vh-5, options.FontSize/2, snap.Tick, snap.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// ASCIIRenderer outputs ASCII art format
type ASCIIRenderer struct{}

// Name returns the name of the renderer
func (r *ASCIIRenderer) Name() string {
	return "ASCII Renderer"
}

// Description returns a description of the renderer
func (r *ASCIIRenderer) Description() string {
	return "Renders snapshots as ASCII art for terminal or text-based output"
}

// Render creates an ASCII representation of the snapshot
func (r *ASCIIRenderer) Render(snap *models.Snapshot, options *OutputOptions) ([]byte, error) {
	width := maxInt(int(ClampDimension(options.Width)/10), 40)
	height := maxInt(int(ClampDimension(options.Height)/20), 20)

	inner := NewCanvas(width-2, height-2)
	inner.DrawSnapshot(snap, FitProjection(snap, width-2, height-2, options.VertexRadius), options.ShowLabels)

	grid := NewCanvas(width, height)
	for i := 0; i < width; i++ {
		grid[0][i] = '-'
		grid[height-1][i] = '-'
	}
	for i := 0; i < height; i++ {
		grid[i][0] = '|'
		grid[i][width-1] = '|'
	}
	grid[0][0] = '+'
	grid[0][width-1] = '+'
	grid[height-1][0] = '+'
	grid[height-1][width-1] = '+'
	for y, row := range inner {
		copy(grid[y+1][1:], row)
	}

	writeBorderText(grid[0], fmt.Sprintf(" forcegraph | tick %d | %s ", snap.Tick, snap.Mode))
	if options.Timestamp && !snap.CreatedAt.IsZero() {
		writeBorderText(grid[height-1], " "+snap.CreatedAt.Format("2006-01-02 15:04")+" ")
	}

	return []byte(grid.String()), nil
}

func writeBorderText(row []rune, text string) {
	for i, c := range []rune(text) {
		if i+2 >= len(row)-2 {
			return
		}
		row[i+2] = c
	}
}

// JSONRenderer outputs the snapshot as JSON
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Description returns a description of the renderer
func (r *JSONRenderer) Description() string {
	return "Renders the snapshot as JSON for programmatic consumers"
}

// Render creates a JSON representation of the snapshot
func (r *JSONRenderer) Render(snap *models.Snapshot, options *OutputOptions) ([]byte, error) {
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

// DOTRenderer outputs Graphviz DOT format
type DOTRenderer struct{}

// Name returns the name of the renderer
func (r *DOTRenderer) Name() string {
	return "DOT Renderer"
}

// Description returns a description of the renderer
func (r *DOTRenderer) Description() string {
	return "Renders the snapshot in Graphviz DOT format for compatibility with Graphviz tools"
}

// Render creates a DOT representation of the snapshot.
// Positions are pinned so neato -n keeps the simulated layout.
func (r *DOTRenderer) Render(snap *models.Snapshot, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer
	colors := paletteFor(options)

	buf.WriteString("digraph forcegraph {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=\"%s\", size=\"%g,%g\"];\n",
		colors.Background, options.Width/72.0, options.Height/72.0)
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"Arial\"];\n")

	for _, v := range snap.Vertices {
		color := colors.Vertex
		switch {
		case snap.IsGrabbed(v.ID):
			color = colors.Grabbed
		case snap.InClique(v.ID):
			color = colors.Clique
		}
		// DOT positions are in points with y growing upward
		fmt.Fprintf(&buf, "  n%d [label=\"%d\", fillcolor=\"%s\", pos=\"%g,%g!\"];\n",
			v.ID, v.ID, color, round2(v.Position.X), round2(-v.Position.Y))
	}

	for _, a := range snap.Arcs {
		if snap.CliqueArc(a) {
			fmt.Fprintf(&buf, "  n%d -> n%d [color=\"%s\", penwidth=2];\n", a.From, a.To, colors.CliqueArc)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [color=\"%s\"];\n", a.From, a.To, colors.Arc)
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func round2(f float64) float64 {
	r := math.Round(f*100) / 100
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

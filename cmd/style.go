package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Output colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// field prints one aligned "label  value" line
func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s  %v\n", Brand.Sprintf("%-12s", label), value)
}

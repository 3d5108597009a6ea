// Package ingest turns external input into per-tick event batches for a session.
package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/TFMV/forcegraph/models"
)

// Batch is the input consumed by one tick
type Batch []models.Event

// DataProcessor defines the interface that all input processors must implement
type DataProcessor interface {
	// ProcessData takes raw input bytes and returns the batches to feed, one per tick
	ProcessData(data []byte) ([]Batch, error)

	// GetName returns the name of the processor
	GetName() string
}

// ScriptProcessor reads a line-oriented input script.
//
// Each line holds one command; blank lines and lines starting with # are
// ignored. Commands accumulate into the current batch until a tick command
// closes it:
//
//	move X Y            pointer to screen position
//	down primary|secondary
//	up primary|secondary
//	mode move|link
//	force on|off
//	vertex              create a vertex under the pointer
//	clique              run the clique search
//	tick [N]            close the batch, then add N-1 empty ticks
//
// Commands left after the last tick form a final batch.
type ScriptProcessor struct{}

// NewScriptProcessor creates a new script processor
func NewScriptProcessor() *ScriptProcessor {
	return &ScriptProcessor{}
}

// GetName returns the name of the processor
func (p *ScriptProcessor) GetName() string {
	return "Script Processor"
}

// ProcessData parses the script into batches
func (p *ScriptProcessor) ProcessData(data []byte) ([]Batch, error) {
	var batches []Batch
	var current Batch

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		if cmd == "tick" {
			n, err := tickCount(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			batches = append(batches, current)
			for i := 1; i < n; i++ {
				batches = append(batches, nil)
			}
			current = nil
			continue
		}

		e, err := parseCommand(cmd, args)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current = append(current, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches, nil
}

func parseCommand(cmd string, args []string) (models.Event, error) {
	switch cmd {
	case "move":
		if len(args) != 2 {
			return models.Event{}, fmt.Errorf("move expects 2 arguments, got %d", len(args))
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid x %q: %w", args[0], err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid y %q: %w", args[1], err)
		}
		return models.PointerMove(models.V(x, y)), nil
	case "down", "up":
		b := models.ButtonPrimary
		if len(args) > 0 {
			var err error
			if b, err = models.ParseButton(strings.ToLower(args[0])); err != nil {
				return models.Event{}, err
			}
		}
		if cmd == "down" {
			return models.PointerDown(b), nil
		}
		return models.PointerUp(b), nil
	case "mode":
		if len(args) != 1 {
			return models.Event{}, fmt.Errorf("mode expects 1 argument, got %d", len(args))
		}
		m, err := models.ParseMode(strings.ToLower(args[0]))
		if err != nil {
			return models.Event{}, err
		}
		return models.SetMode(m), nil
	case "force":
		if len(args) != 1 {
			return models.Event{}, fmt.Errorf("force expects 1 argument, got %d", len(args))
		}
		switch strings.ToLower(args[0]) {
		case "on", "true":
			return models.SetForce(true), nil
		case "off", "false":
			return models.SetForce(false), nil
		default:
			return models.Event{}, fmt.Errorf("invalid force value %q", args[0])
		}
	case "vertex":
		return models.CreateVertex(), nil
	case "clique":
		return models.ComputeClique(), nil
	default:
		return models.Event{}, fmt.Errorf("unknown command %q", cmd)
	}
}

func tickCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid tick count %q", args[0])
	}
	return n, nil
}

// GetProcessor returns the appropriate processor for the given format
func GetProcessor(format string) (DataProcessor, error) {
	switch strings.ToLower(format) {
	case "script", "":
		return NewScriptProcessor(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

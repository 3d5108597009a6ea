package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/forcegraph/config"
	"github.com/TFMV/forcegraph/models"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCliqueJSON(t *testing.T) {
	out, _, err := execute(t, "clique", "--seed-kind", "complete", "--vertices", "5", "--json")
	require.NoError(t, err)

	var result struct {
		Kind     string            `json:"kind"`
		Vertices int               `json:"vertices"`
		Arcs     int               `json:"arcs"`
		Clique   []models.VertexID `json:"clique"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "complete", result.Kind)
	assert.Equal(t, 5, result.Vertices)
	assert.Equal(t, 10, result.Arcs)
	assert.Equal(t, []models.VertexID{0, 1, 2, 3, 4}, result.Clique)
}

func TestCliqueText(t *testing.T) {
	out, _, err := execute(t, "clique", "--seed-kind", "ring", "--vertices", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "0 1 2")
	assert.Contains(t, out, "verified")

	out, _, err = execute(t, "clique")
	require.NoError(t, err)
	assert.Contains(t, out, "none")
}

func TestRenderJSONFromSeed(t *testing.T) {
	out, stderr, err := execute(t, "render", "--seed-kind", "ring", "--vertices", "4", "--ticks", "10", "--format", "json")
	require.NoError(t, err)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, uint64(10), snap.Tick)
	assert.Len(t, snap.Vertices, 4)
	assert.Len(t, snap.Arcs, 4)
	assert.Contains(t, stderr, "simulation finished")
}

func TestRenderScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(script, []byte("move 500 500\nvertex\nmove 800 500\ndown secondary\ntick\n"), 0o644))

	out, _, err := execute(t, "render", "--script", script, "--ticks", "1", "--format", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, `n0 [label="0"`)
	assert.Contains(t, out, `n1 [label="1"`)
}

func TestRenderScriptErrors(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(script, []byte("vertex\nwiggle\n"), 0o644))

	_, _, err := execute(t, "render", "--script", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRenderToFileInfersFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	_, stderr, err := execute(t, "render", "--seed-kind", "complete", "--vertices", "3", "--ticks", "5", "--clique", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Equal(t, 3, strings.Count(string(data), `class="vertex"`))
}

func TestRenderCliquePublished(t *testing.T) {
	out, _, err := execute(t, "render", "--seed-kind", "complete", "--vertices", "3", "--ticks", "2", "--clique", "-f", "json")
	require.NoError(t, err)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, []models.VertexID{0, 1, 2}, snap.Clique)
	assert.Equal(t, uint64(2), snap.Tick, "the clique does not cost an extra step")

	plain, _, err := execute(t, "render", "--seed-kind", "complete", "--vertices", "3", "--ticks", "2", "-f", "json")
	require.NoError(t, err)
	var without models.Snapshot
	require.NoError(t, json.Unmarshal([]byte(plain), &without))
	assert.Equal(t, without.Vertices, snap.Vertices)
}

func TestBadInputs(t *testing.T) {
	_, _, err := execute(t, "clique", "--seed-kind", "torus", "--vertices", "3")
	assert.Error(t, err)

	_, _, err = execute(t, "render", "--format", "png")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[viewport]\nwidth = -1\n"), 0o644))
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "clique"})
	assert.Error(t, root.Execute())
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Format = "json"
	var buf bytes.Buffer

	logger, err := newLogger(cfg, &buf, false)
	require.NoError(t, err)
	logger.Info("hello", "vertices", 3)
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, float64(3), line["vertices"])

	cfg.Log.Level = "loud"
	_, err = newLogger(cfg, &buf, false)
	assert.Error(t, err)
}

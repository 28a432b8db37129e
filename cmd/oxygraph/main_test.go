package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/export"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		want    common.Resolution
		wantErr bool
	}{
		{in: "1920x1080", want: common.Resolution{Width: 1920, Height: 1080}},
		{in: "3840X2160", want: common.Resolution{Width: 3840, Height: 2160}},
		{in: "0x0", want: common.Resolution{}},
		{in: "1920", wantErr: true},
		{in: "x1080", wantErr: true},
		{in: "1920x", wantErr: true},
		{in: "wide x tall", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseResolution(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileCommand(t *testing.T) {
	out, err := run(t, "compile", "--preset", "three-channel", "--width", "800", "--height", "600")
	require.NoError(t, err)

	doc, err := export.Unmarshal([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, common.Resolution{Width: 800, Height: 600}, doc.Resolution)
	assert.Len(t, doc.Passes, 4)
}

func TestCompileCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	out, err := run(t, "compile", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := export.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, common.Resolution{Width: 1920, Height: 1080}, doc.Resolution)
}

func TestCompileCommandFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte("preset = \"three-channel\"\n"), 0o644))

	out, err := run(t, "compile", "--config", path)
	require.NoError(t, err)
	doc, err := export.Unmarshal([]byte(out))
	require.NoError(t, err)
	assert.Len(t, doc.Passes, 4)

	_, err = run(t, "compile", "--preset", "ultra")
	assert.ErrorIs(t, err, pipeline.ErrInvalidPolicy)
}

func TestBatchCommand(t *testing.T) {
	out, err := run(t, "batch", "-w", "2", "1920x1080", "1x1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1920x1080\tok"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1x1\tok"), lines[1])

	_, err = run(t, "batch", "1920by1080")
	assert.Error(t, err)
}

func TestPresetsCommand(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(pipeline.Presets()))
	assert.True(t, strings.HasPrefix(lines[0], "atmosphere\t"))

	out, err = run(t, "presets", "--dump", "sorted")
	require.NoError(t, err)
	p, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, pipeline.SortedPolicy(), p)
}

func TestWatchRequiresConfig(t *testing.T) {
	_, err := run(t, "watch")
	assert.Error(t, err)
}

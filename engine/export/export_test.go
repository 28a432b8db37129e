package export

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/compositor"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configure(t *testing.T, p pipeline.Policy) *graph.Graph {
	t.Helper()
	g, err := pipeline.Configure(common.Resolution{Width: 1920, Height: 1080}, p,
		graph.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return g
}

func TestBuild(t *testing.T) {
	g := configure(t, pipeline.DefaultPolicy())
	doc := Build(g)

	assert.Equal(t, g.Resolution(), doc.Resolution)
	assert.Equal(t, g.WorldSettings(), doc.World)
	require.Len(t, doc.Textures, len(g.Textures()))
	require.Len(t, doc.Passes, len(g.Passes()))

	for i, e := range g.Passes() {
		assert.Equal(t, e.Pass.Name(), doc.Passes[i].Name)
		assert.Equal(t, e.Stage.String(), doc.Passes[i].Stage)
	}

	first := doc.Passes[0]
	assert.Equal(t, "object", first.Kind)
	assert.Equal(t, "geometry", first.Stage)
	assert.NotEmpty(t, first.Usage)
	assert.NotEmpty(t, first.Vertex)

	final := doc.Passes[len(doc.Passes)-1]
	assert.Equal(t, "combination", final.Kind)
	assert.Equal(t, "final", final.Stage)
	assert.Equal(t, compositor.Program, final.Fragment)
	assert.Empty(t, final.Usage)
	assert.Empty(t, final.Vertex)

	for _, tex := range doc.Textures {
		assert.Positive(t, tex.Width, tex.Name)
		assert.Positive(t, tex.Height, tex.Name)
		assert.GreaterOrEqual(t, tex.Mips, 1, tex.Name)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, p := range []pipeline.Policy{pipeline.DefaultPolicy(), pipeline.SortedPolicy()} {
		t.Run(p.Name, func(t *testing.T) {
			g := configure(t, p)
			want := Build(g)

			data, err := Marshal(g)
			require.NoError(t, err)
			got, err := Unmarshal(data)
			require.NoError(t, err)

			assert.Equal(t, want.Resolution, got.Resolution)
			assert.Equal(t, want.World, got.World)
			assert.Equal(t, want.Textures, got.Textures)
			require.Len(t, got.Passes, len(want.Passes))
			for i, w := range want.Passes {
				gp := got.Passes[i]
				assert.Equal(t, w.Name, gp.Name)
				assert.Equal(t, w.Stage, gp.Stage)
				assert.Equal(t, w.Index, gp.Index)
				assert.Equal(t, w.Kind, gp.Kind)
				assert.Equal(t, w.Usage, gp.Usage)
				assert.Equal(t, w.Fragment, gp.Fragment)
				assert.ElementsMatch(t, w.Targets, gp.Targets, w.Name)
				assert.ElementsMatch(t, w.Reads, gp.Reads, w.Name)
				if len(w.Defines) > 0 {
					assert.Equal(t, w.Defines, gp.Defines, w.Name)
				}
			}
		})
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	g := configure(t, pipeline.SortedPolicy())

	var a, b bytes.Buffer
	require.NoError(t, Write(&a, g))
	require.NoError(t, Write(&b, g))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "name: Final Pass")
}

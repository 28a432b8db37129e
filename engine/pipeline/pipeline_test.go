package pipeline

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/atmosphere"
	"github.com/Carmen-Shannon/oxy-graph/engine/bloom"
	"github.com/Carmen-Shannon/oxy-graph/engine/compositor"
	"github.com/Carmen-Shannon/oxy-graph/engine/gbuffer"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hd    = common.Resolution{Width: 1920, Height: 1080}
	quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestPresetsBuild(t *testing.T) {
	tests := []struct {
		preset   string
		textures int
		passes   int
		finalIn  string
	}{
		{"default", 15, 25, "bloomMergeTexture"},
		{"three-channel", 9, 4, "solidAlbedoTexture"},
		{"atmosphere", 18, 28, "bloomMergeTexture"},
		{"sorted", 19, 29, "bloomMergeTexture"},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			p, err := Preset(tt.preset)
			require.NoError(t, err)

			g, err := Configure(hd, p, graph.WithLogger(quiet))
			require.NoError(t, err)
			assert.Len(t, g.Textures(), tt.textures)
			assert.Len(t, g.Passes(), tt.passes)
			assert.Equal(t, common.DefaultWorldSettings(), g.WorldSettings())

			require.NotNil(t, g.Final())
			in, ok := g.Final().Define(compositor.DefineInputTexture)
			require.True(t, ok)
			assert.Equal(t, tt.finalIn, in)
		})
	}
}

func TestPresetsBuildAtDegenerateResolutions(t *testing.T) {
	for name, p := range Presets() {
		for _, res := range []common.Resolution{{Width: 1, Height: 1}, {Width: 0, Height: 0}, {Width: 7680, Height: 4320}} {
			t.Run(name+"/"+res.String(), func(t *testing.T) {
				_, err := Configure(res, p, graph.WithLogger(quiet))
				assert.NoError(t, err)
			})
		}
	}
}

func TestSortedPolicyWiring(t *testing.T) {
	g, err := Configure(hd, SortedPolicy(), graph.WithLogger(quiet))
	require.NoError(t, err)

	post := g.Stage(pass.StagePostRender)
	require.NotEmpty(t, post)
	assert.Equal(t, "Composite Sort Pass", post[0].Name())

	copyPass := post[1]
	in, _ := copyPass.Define(bloom.DefineInputTexture)
	assert.Equal(t, "compositeSortTexture", in)

	sky := g.Stage(pass.StagePreRender)
	require.Len(t, sky, 1)
	v, _ := sky[0].Define(atmosphere.DefineTransmittanceTexture)
	assert.Equal(t, "overworldTransmittanceTexture", v)
}

func TestStageOrderOfDefaultPolicy(t *testing.T) {
	g, err := Configure(hd, AtmospherePolicy(), graph.WithLogger(quiet))
	require.NoError(t, err)

	prev := pass.StageSetup
	for _, e := range g.Passes() {
		assert.GreaterOrEqual(t, e.Stage, prev)
		prev = e.Stage
	}
	assert.Len(t, g.Stage(pass.StageGeometry), len(gbuffer.DefaultCategories()))
}

func TestConfigureRejects(t *testing.T) {
	_, err := Configure(common.Resolution{Width: -1, Height: 10}, DefaultPolicy())
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	p := DefaultPolicy()
	p.BloomInput = BloomInputSort
	_, err = Configure(hd, p)
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	p = DefaultPolicy()
	p.Gbuffer.Layout = nil
	_, err = Configure(hd, p)
	assert.ErrorIs(t, err, gbuffer.ErrInvalidPolicy)

	p = AtmospherePolicy()
	p.Atmospheres[0].Settings.AtmosphereRadius = 0
	_, err = Configure(hd, p)
	assert.ErrorIs(t, err, atmosphere.ErrInvalidSettings)
}

func TestPolicyValidate(t *testing.T) {
	for name, p := range Presets() {
		assert.NoError(t, p.Validate(), name)
	}

	p := SortedPolicy()
	p.Gbuffer.Categories = gbuffer.DefaultCategories()[:1]
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)

	p = DefaultPolicy()
	p.BloomInput = "luma"
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)

	p = AtmospherePolicy()
	p.Atmospheres = append(p.Atmospheres, p.Atmospheres[0])
	assert.ErrorIs(t, p.Validate(), ErrInvalidPolicy)

	_, err := Preset("ultra")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	_, err = Preset("SORTED")
	assert.NoError(t, err)
}

func TestPolicyWithoutSolidCategory(t *testing.T) {
	p := DefaultPolicy()
	p.Gbuffer.Categories = []gbuffer.Category{{Prefix: "entity", Usage: pass.UsageEntity}}

	g, err := Configure(hd, p, graph.WithLogger(quiet))
	require.NoError(t, err)
	in, _ := g.Stage(pass.StagePostRender)[0].Define(bloom.DefineInputTexture)
	assert.Equal(t, "entityAlbedoTexture", in)
}

func TestCompilerKeepsPriorGraphOnFailure(t *testing.T) {
	rec := graph.NewRecorder()
	prof := profiler.NewProfiler(quiet)
	c := NewCompiler(WithLogger(quiet), WithBackend(rec), WithProfiler(prof))
	assert.Nil(t, c.Current())

	g, err := c.Reconfigure(hd)
	require.NoError(t, err)
	assert.Same(t, g, c.Current())
	assert.Equal(t, hd, c.Resolution())
	assert.Len(t, rec.Passes, len(g.Passes()))

	bad := DefaultPolicy()
	bad.BloomInput = BloomInputSort
	_, err = c.SetPolicy(bad)
	require.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Same(t, g, c.Current())
	assert.Equal(t, "default", c.Policy().Name)

	_, err = c.Reconfigure(common.Resolution{Width: -5, Height: 5})
	require.Error(t, err)
	assert.Same(t, g, c.Current())
	assert.Len(t, rec.Passes, len(g.Passes()))

	st := prof.Stats()
	assert.Equal(t, 3, st.Configurations)
	assert.Equal(t, 2, st.Failures)
}

// flakyBackend records like graph.Recorder but rejects the failAt-th pass registered once armed.
type flakyBackend struct {
	*graph.Recorder
	armed      bool
	failAt     int
	registered int
}

func (b *flakyBackend) RegisterPass(stage pass.Stage, p pass.Pass) error {
	if b.armed {
		b.registered++
		if b.registered == b.failAt {
			b.armed = false
			return errors.New("pipeline link failed")
		}
	}
	return b.Recorder.RegisterPass(stage, p)
}

func TestCompilerReinstallsPriorGraphWhenInstallFails(t *testing.T) {
	b := &flakyBackend{Recorder: graph.NewRecorder(), failAt: 6}
	c := NewCompiler(WithLogger(quiet), WithBackend(b))

	g, err := c.Reconfigure(hd)
	require.NoError(t, err)

	b.armed = true
	_, err = c.Reconfigure(common.Resolution{Width: 640, Height: 480})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline link failed")

	assert.Same(t, g, c.Current())
	require.Len(t, b.Passes, len(g.Passes()))
	require.Len(t, b.Textures, len(g.Textures()))
	for i, tex := range g.Textures() {
		assert.Equal(t, tex.Name(), b.Textures[i].Name())
		assert.Equal(t, tex.Descriptor(hd), b.Descriptors[i], tex.Name())
	}
}

func TestCompilerFirstInstallFailureLeavesNoGraph(t *testing.T) {
	b := &flakyBackend{Recorder: graph.NewRecorder(), armed: true, failAt: 1}
	c := NewCompiler(WithLogger(quiet), WithBackend(b))

	_, err := c.Reconfigure(hd)
	require.Error(t, err)
	assert.Nil(t, c.Current())
}

func TestCompilerSetPolicyBeforeReconfigure(t *testing.T) {
	rec := graph.NewRecorder()
	c := NewCompiler(WithLogger(quiet), WithBackend(rec))

	g, err := c.SetPolicy(SortedPolicy())
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.Nil(t, c.Current())
	assert.Empty(t, rec.Passes)
	assert.Equal(t, "sorted", c.Policy().Name)

	bad := DefaultPolicy()
	bad.BloomInput = BloomInputSort
	_, err = c.SetPolicy(bad)
	require.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Equal(t, "sorted", c.Policy().Name)

	g, err = c.Reconfigure(hd)
	require.NoError(t, err)
	_, ok := g.Texture("compositeSortTexture")
	assert.True(t, ok)
}

func TestCompilerSetPolicy(t *testing.T) {
	c := NewCompiler(WithLogger(quiet), WithPolicy(ThreeChannelPolicy()))
	_, err := c.Reconfigure(common.Resolution{Width: 800, Height: 600})
	require.NoError(t, err)
	assert.Len(t, c.Current().Textures(), 9)

	g, err := c.SetPolicy(SortedPolicy())
	require.NoError(t, err)
	assert.Same(t, g, c.Current())
	assert.Equal(t, "sorted", c.Policy().Name)
	assert.Equal(t, common.Resolution{Width: 800, Height: 600}, g.Resolution())
}

func TestCompileAll(t *testing.T) {
	resolutions := []common.Resolution{
		{Width: 1920, Height: 1080},
		{Width: 1, Height: 1},
		{Width: -1, Height: 1},
		{Width: 3840, Height: 2160},
		{Width: 640, Height: 480},
	}
	results := CompileAll(DefaultPolicy(), resolutions, 3, graph.WithLogger(quiet))
	require.Len(t, results, len(resolutions))

	for i, r := range results {
		assert.Equal(t, resolutions[i], r.Resolution)
		if r.Resolution.Width < 0 {
			assert.ErrorIs(t, r.Err, ErrInvalidPolicy)
			assert.Nil(t, r.Graph)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, r.Resolution, r.Graph.Resolution())
	}

	// 10 downsample + 10 upsample + merge at 1080p, 11 + 11 + 1 at 4k
	assert.Len(t, results[0].Graph.Stage(pass.StagePostRender), 21)
	assert.Len(t, results[3].Graph.Stage(pass.StagePostRender), 23)
}

func TestCompileAllEmpty(t *testing.T) {
	assert.Empty(t, CompileAll(DefaultPolicy(), nil, 4))
}

package composite_sort

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hd = common.Resolution{Width: 1920, Height: 1080}

// layers declares one written texture per name.
func layers(t *testing.T, ctx graph.Context, names ...string) []texture.Handle {
	t.Helper()
	out := make([]texture.Handle, 0, len(names))
	for _, name := range names {
		h, err := ctx.Declare(texture.NewTexture(name))
		require.NoError(t, err)
		require.NoError(t, ctx.Register(pass.StageGeometry,
			pass.NewObject(name, pass.UsageBasic, "v", "f", pass.WithTarget(0, h))))
		out = append(out, h)
	}
	return out
}

func TestSetup(t *testing.T) {
	ctx := graph.NewContext(hd)
	in := layers(t, ctx, "solidAlbedoTexture", "translucentAlbedoTexture", "basicAlbedoTexture")

	s, err := Setup(ctx, Inputs{Solid: in[0], Translucent: in[1], Layers: in[2:]})
	require.NoError(t, err)
	assert.Equal(t, "compositeSortTexture", s.Output().Name())

	g, err := ctx.Build()
	require.NoError(t, err)

	tex, ok := g.Texture(s.Output().Name())
	require.True(t, ok)
	assert.False(t, tex.Mipmap())
	assert.False(t, tex.Clear())
	assert.Equal(t, texture.FormatRGBA16F, tex.Format())
	assert.Equal(t, texture.DimensionScreen, tex.Dimension())

	post := g.Stage(pass.StagePostRender)
	require.Len(t, post, 1)
	p := post[0]
	assert.Equal(t, Program, p.FragmentSource())
	assert.Equal(t, []pass.Target{{Slot: 0, Texture: "compositeSortTexture"}}, p.Targets())

	want := map[string]string{
		DefineSolidTexture:       "solidAlbedoTexture",
		DefineTranslucentTexture: "translucentAlbedoTexture",
		DefineLayerCount:         "1",
		LayerDefine(0):           "basicAlbedoTexture",
	}
	for key, v := range want {
		got, ok := p.Define(key)
		require.True(t, ok, key)
		assert.Equal(t, v, got)
	}
	assert.Len(t, p.Reads(), 3)
	assert.Len(t, p.TextureRefs(), 3)
}

func TestSetupOptions(t *testing.T) {
	ctx := graph.NewContext(hd)
	in := layers(t, ctx, "a", "b")
	s, err := Setup(ctx, Inputs{Solid: in[0], Translucent: in[1]},
		WithTextureName("resolvedTexture"), WithFormat(texture.FormatRGBA32F))
	require.NoError(t, err)
	assert.Equal(t, "resolvedTexture", s.Output().Name())

	g, err := ctx.Build()
	require.NoError(t, err)
	require.Len(t, g.Stage(pass.StagePostRender), 1)
	layerCount, _ := g.Stage(pass.StagePostRender)[0].Define(DefineLayerCount)
	assert.Equal(t, "0", layerCount)
	tex, _ := g.Texture("resolvedTexture")
	assert.Equal(t, texture.FormatRGBA32F, tex.Format())
}

func TestSortBeforeGeometryFailsValidation(t *testing.T) {
	ctx := graph.NewContext(hd)
	in := layers(t, ctx, "a", "b")
	_, err := Setup(ctx, Inputs{Solid: in[0], Translucent: in[1]}, WithStage(pass.StagePreRender))
	require.NoError(t, err)

	_, err = ctx.Build()
	assert.ErrorIs(t, err, graph.ErrUnorderedDependency)
}

func TestSetupForeignInput(t *testing.T) {
	ctx := graph.NewContext(hd)
	in := layers(t, ctx, "a")
	_, err := Setup(ctx, Inputs{Solid: in[0], Translucent: texture.NewHandle(9, "nowhere")})
	assert.ErrorIs(t, err, graph.ErrDanglingReference)
	_, err = Setup(ctx, Inputs{Solid: in[0]})
	assert.ErrorIs(t, err, graph.ErrDanglingReference)
}

func TestLayerDefine(t *testing.T) {
	assert.Equal(t, "def_layer0Texture", LayerDefine(0))
	assert.Equal(t, "def_layer12Texture", LayerDefine(12))
}

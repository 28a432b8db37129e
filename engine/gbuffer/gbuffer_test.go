package gbuffer

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

func TestSetupCategories(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{"default four channel", DefaultPolicy()},
		{"three channel", Policy{Categories: DefaultCategories(), Layout: ThreeChannelLayout()}},
		{"single category", Policy{Categories: DefaultCategories()[:1], Layout: FourChannelLayout()}},
		{"with entities", Policy{
			Categories: append(DefaultCategories(), Category{Prefix: "entity", Usage: pass.UsageEntity}),
			Layout:     FourChannelLayout(),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := graph.NewContext(hd)
			gb, err := Setup(ctx, tt.policy)
			require.NoError(t, err)
			g, err := ctx.Build()
			require.NoError(t, err)

			objects := g.Stage(pass.StageGeometry)
			require.Len(t, objects, len(tt.policy.Categories))
			assert.Len(t, g.Textures(), len(tt.policy.Categories)*len(tt.policy.Layout))
			assert.Len(t, gb.Sets(), len(tt.policy.Categories))

			for i, p := range objects {
				c := tt.policy.Categories[i]
				assert.Equal(t, pass.KindObject, p.Kind())
				assert.Equal(t, c.Usage, p.Usage())
				assert.Equal(t, VertexProgram, p.VertexSource())
				assert.Equal(t, FragmentProgram, p.FragmentSource())
				require.Len(t, p.Targets(), len(tt.policy.Layout))
				for slot, tg := range p.Targets() {
					assert.Equal(t, slot, tg.Slot)
					assert.Equal(t, c.Prefix+tt.policy.Layout[slot].Suffix+"Texture", tg.Texture)
				}
				count, _ := p.Define(DefineTargetCount)
				assert.Equal(t, pass.FormatInt(len(tt.policy.Layout)), count)
			}
		})
	}
}

func TestSlotDefines(t *testing.T) {
	ctx := graph.NewContext(hd)
	_, err := Setup(ctx, Policy{Categories: DefaultCategories(), Layout: ThreeChannelLayout()})
	require.NoError(t, err)
	g, err := ctx.Build()
	require.NoError(t, err)

	solid := g.Stage(pass.StageGeometry)[0]
	want := map[string]string{"def_albedoSlot": "0", "def_normalSlot": "1", "def_materialSlot": "2"}
	for key, v := range want {
		got, ok := solid.Define(key)
		require.True(t, ok, key)
		assert.Equal(t, v, got)
	}
	_, ok := solid.Define("def_lightSlot")
	assert.False(t, ok)
}

func TestTexturesClear(t *testing.T) {
	black := common.ClearColor{0, 0, 0, 0}
	p := DefaultPolicy()
	p.ClearColor = &black

	ctx := graph.NewContext(hd)
	gb, err := Setup(ctx, p)
	require.NoError(t, err)

	for _, set := range gb.Sets() {
		for _, h := range set.Textures {
			tex, ok := ctx.Texture(h)
			require.True(t, ok)
			assert.True(t, tex.Clear())
			c, ok := tex.ClearColor()
			require.True(t, ok)
			assert.Equal(t, black, c)
			assert.Equal(t, texture.DimensionScreen, tex.Dimension())
			assert.False(t, tex.Mipmap())
		}
	}
}

func TestLookups(t *testing.T) {
	ctx := graph.NewContext(hd)
	gb, err := Setup(ctx, DefaultPolicy())
	require.NoError(t, err)

	solid := gb.Set(pass.UsageTerrainSolid)
	require.NotNil(t, solid)
	assert.Equal(t, "solidAlbedoTexture", solid.Albedo().Name())
	n, ok := solid.Texture(Normal)
	require.True(t, ok)
	assert.Equal(t, "solidNormalTexture", n.Name())
	_, ok = solid.Texture("Depth")
	assert.False(t, ok)
	assert.Nil(t, gb.Set(pass.UsageEntity))
}

func TestAlbedoFallsBackToSlotZero(t *testing.T) {
	ctx := graph.NewContext(hd)
	gb, err := Setup(ctx, Policy{
		Categories: []Category{{Prefix: "basic", Usage: pass.UsageBasic}},
		Layout:     []Channel{{Suffix: "Color", Format: texture.FormatRGBA16F}, {Suffix: Normal, Format: texture.FormatRGBA8}},
	})
	require.NoError(t, err)
	assert.Equal(t, "basicColorTexture", gb.Set(pass.UsageBasic).Albedo().Name())
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{"no categories", Policy{Layout: FourChannelLayout()}},
		{"no layout", Policy{Categories: DefaultCategories()}},
		{"duplicate usage", Policy{
			Categories: []Category{{Prefix: "a", Usage: pass.UsageBasic}, {Prefix: "b", Usage: pass.UsageBasic}},
			Layout:     FourChannelLayout(),
		}},
		{"duplicate prefix", Policy{
			Categories: []Category{{Prefix: "a", Usage: pass.UsageBasic}, {Prefix: "a", Usage: pass.UsageEntity}},
			Layout:     FourChannelLayout(),
		}},
		{"usage none", Policy{Categories: []Category{{Prefix: "a"}}, Layout: FourChannelLayout()}},
		{"bad prefix", Policy{Categories: []Category{{Prefix: "a b", Usage: pass.UsageBasic}}, Layout: FourChannelLayout()}},
		{"duplicate suffix", Policy{
			Categories: DefaultCategories(),
			Layout:     []Channel{{Suffix: Albedo}, {Suffix: Albedo}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.policy.Validate(), ErrInvalidPolicy)

			ctx := graph.NewContext(hd)
			_, err := Setup(ctx, tt.policy)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestSlotDefine(t *testing.T) {
	assert.Equal(t, "def_albedoSlot", SlotDefine(Albedo))
	assert.Equal(t, "def_lightSlot", SlotDefine(Light))
}

package registry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare(t *testing.T) {
	r := NewResourceRegistry()

	a, err := r.Declare(texture.NewTexture("solidAlbedoTexture"))
	require.NoError(t, err)
	b, err := r.Declare(texture.NewTexture("solidNormalTexture"))
	require.NoError(t, err)

	assert.Equal(t, "solidAlbedoTexture", a.Name())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(b)
	require.True(t, ok)
	assert.Equal(t, "solidNormalTexture", got.Name())

	got, ok = r.Lookup("solidAlbedoTexture")
	require.True(t, ok)
	assert.Equal(t, a.Name(), got.Name())

	names := []string{}
	for _, tex := range r.Textures() {
		names = append(names, tex.Name())
	}
	assert.Equal(t, []string{"solidAlbedoTexture", "solidNormalTexture"}, names)
}

func TestDeclareDuplicate(t *testing.T) {
	tests := []struct {
		name  string
		first texture.Texture
		again texture.Texture
	}{
		{"plain then mip", texture.NewTexture("bloomMergeTexture"), texture.NewTexture("bloomMergeTexture", texture.WithMipmap(true))},
		{"mip then plain", texture.NewTexture("bloomMergeTexture", texture.WithMipmap(true)), texture.NewTexture("bloomMergeTexture")},
		{"fixed then screen", texture.NewTexture("lut", texture.WithFixedSize(32, 32)), texture.NewTexture("lut")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResourceRegistry()
			_, err := r.Declare(tt.first)
			require.NoError(t, err)

			_, err = r.Declare(tt.again)
			require.ErrorIs(t, err, ErrDuplicateResource)
			assert.Contains(t, err.Error(), tt.first.Name())
			assert.Equal(t, 1, r.Len())
		})
	}
}

func TestDeclareEmptyName(t *testing.T) {
	r := NewResourceRegistry()
	_, err := r.Declare(texture.NewTexture(""))
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = r.Declare(nil)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestGetForeignHandle(t *testing.T) {
	r := NewResourceRegistry()
	_, err := r.Declare(texture.NewTexture("a"))
	require.NoError(t, err)

	_, ok := r.Get(texture.Handle{})
	assert.False(t, ok)
	_, ok = r.Get(texture.NewHandle(1, "b"))
	assert.False(t, ok)
	_, ok = r.Get(texture.NewHandle(5, "a"))
	assert.False(t, ok)
}

func TestPassOrdering(t *testing.T) {
	r := NewPassRegistry()
	post0 := pass.NewComposite("post 0", "a.frag")
	setup0 := pass.NewComposite("setup 0", "b.frag")
	post1 := pass.NewComposite("post 1", "c.frag")
	final := pass.NewCombination("final", "final.frag")
	pre0 := pass.NewComposite("pre 0", "d.frag")

	require.NoError(t, r.Register(pass.StagePostRender, post0))
	require.NoError(t, r.Register(pass.StageFinal, final))
	require.NoError(t, r.Register(pass.StageSetup, setup0))
	require.NoError(t, r.Register(pass.StagePostRender, post1))
	require.NoError(t, r.Register(pass.StagePreRender, pre0))

	var names []string
	for _, e := range r.Ordered() {
		names = append(names, e.Pass.Name())
	}
	assert.Equal(t, []string{"setup 0", "pre 0", "post 0", "post 1", "final"}, names)

	ordered := r.Ordered()
	assert.Equal(t, pass.StagePostRender, ordered[3].Stage)
	assert.Equal(t, 1, ordered[3].Index)
	assert.Len(t, r.Stage(pass.StagePostRender), 2)
	assert.Empty(t, r.Stage(pass.StageGeometry))
	assert.Equal(t, 5, r.Len())
}

func TestRegisterInvalid(t *testing.T) {
	r := NewPassRegistry()
	assert.ErrorIs(t, r.Register(pass.StageCount, pass.NewComposite("x", "x.frag")), ErrInvalidStage)
	assert.ErrorIs(t, r.Register(pass.Stage(-1), pass.NewComposite("x", "x.frag")), ErrInvalidStage)
	assert.ErrorIs(t, r.Register(pass.StageSetup, nil), ErrNilPass)
	assert.Nil(t, r.Stage(pass.StageCount))
	assert.Zero(t, r.Len())
}

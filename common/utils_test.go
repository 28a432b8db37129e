package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMipCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
	}{
		{"1080p", 1920, 1080, 10},
		{"portrait", 1080, 1920, 10},
		{"exact power of two", 1024, 512, 10},
		{"just below power of two", 1023, 1, 9},
		{"4k", 3840, 2160, 11},
		{"single pixel", 1, 1, 1},
		{"zero", 0, 0, 1},
		{"two pixels", 2, 1, 1},
		{"three pixels", 3, 3, 1},
		{"four pixels", 4, 1, 2},
		{"negative", -8, -8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MipCount(tt.width, tt.height))
		})
	}
}

func TestLevelSize(t *testing.T) {
	assert.Equal(t, 1920, LevelSize(1920, 0))
	assert.Equal(t, 960, LevelSize(1920, 1))
	assert.Equal(t, 1, LevelSize(1920, 11))
	assert.Equal(t, 1, LevelSize(1080, 20))
	assert.Equal(t, 1, LevelSize(0, 0))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestResolution(t *testing.T) {
	assert.Equal(t, "1920x1080", Resolution{Width: 1920, Height: 1080}.String())
	assert.True(t, Resolution{Width: 1, Height: 1}.Valid())
	assert.False(t, Resolution{}.Valid())
	assert.False(t, Resolution{Width: -1, Height: 4}.Valid())
}

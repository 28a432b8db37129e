// Package bloom generates the screen-space bloom chain: a downsample pass per mip level, an upsample pass per mip level
// walking back down, and a single merge pass. The number of passes depends on the screen resolution.
package bloom

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Program identifiers of the bloom chain.
const (
	CopyProgram          = "programs/post/copy.frag"
	DownsampleProgram    = "programs/post/bloom/downsample.frag"
	UpsampleFirstProgram = "programs/post/bloom/upsample_first.frag"
	UpsampleProgram      = "programs/post/bloom/upsample.frag"
	MergeProgram         = "programs/post/bloom/merge.frag"
)

// Define keys emitted into the bloom programs.
const (
	DefineInputTexture = "def_inputTexture"
	DefineCurrentLod   = "def_currentLod"
	DefineMaxLod       = "def_maxLod"
)

// Bloom holds the handles declared by one bloom chain.
type Bloom struct {
	Downsample texture.Handle
	Upsample   texture.Handle
	Merge      texture.Handle
	Input      texture.Handle

	mipCount int
	res      common.Resolution
}

// Setup declares the bloom textures and registers the downsample, upsample and merge passes for the context's
// resolution. input is the texture bloom is applied to; which texture that is depends on the pipeline variant.
//
// Parameters:
//   - ctx: the configuration context
//   - input: the texture bloom reads from
//   - opts: a variadic list of BloomBuilderOption functions
//
// Returns:
//   - *Bloom: the declared handles
//   - error: error if a declaration or registration fails, or the input does not belong to ctx
func Setup(ctx graph.Context, input texture.Handle, opts ...BloomBuilderOption) (*Bloom, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, ok := ctx.Texture(input); !ok {
		return nil, fmt.Errorf("bloom input %q: %w", input.Name(), graph.ErrDanglingReference)
	}

	b := &Bloom{
		Input:    input,
		mipCount: ctx.ScreenMipCount(),
		res:      ctx.Resolution(),
	}
	if err := b.setupTextures(ctx, cfg); err != nil {
		return nil, err
	}
	if err := b.setupDownsampleChain(ctx, cfg); err != nil {
		return nil, err
	}
	if err := b.setupUpsampleChain(ctx, cfg); err != nil {
		return nil, err
	}
	if err := b.setupMerge(ctx, cfg); err != nil {
		return nil, err
	}
	ctx.Logger().Debug("bloom chain configured", "mipCount", b.mipCount, "input", input.Name())
	return b, nil
}

// MipCount returns the number of mip levels the chain walks.
func (b *Bloom) MipCount() int {
	return b.mipCount
}

// Output returns the merged bloom result.
func (b *Bloom) Output() texture.Handle {
	return b.Merge
}

// LevelSize returns the pixel size of a bloom mip level.
//
// Parameters:
//   - lod: the mip level
//
// Returns:
//   - int: width in pixels
//   - int: height in pixels
func (b *Bloom) LevelSize(lod int) (int, int) {
	return common.LevelSize(b.res.Width, lod), common.LevelSize(b.res.Height, lod)
}

func (b *Bloom) setupTextures(ctx graph.Context, cfg config) error {
	declare := func(suffix string) (texture.Handle, error) {
		return ctx.Declare(texture.NewTexture(cfg.prefix+suffix,
			texture.WithFormat(cfg.format),
			texture.WithClear(false),
			texture.WithMipmap(true),
		))
	}
	var err error
	if b.Downsample, err = declare("DownsampleTexture"); err != nil {
		return fmt.Errorf("bloom: %w", err)
	}
	if b.Upsample, err = declare("UpsampleTexture"); err != nil {
		return fmt.Errorf("bloom: %w", err)
	}
	if b.Merge, err = declare("MergeTexture"); err != nil {
		return fmt.Errorf("bloom: %w", err)
	}
	return nil
}

func (b *Bloom) setupDownsampleChain(ctx graph.Context, cfg config) error {
	// level 0 is a plain copy of the input, no filtering
	if err := ctx.Register(cfg.stage, pass.NewComposite("Bloom Downsample Pass 0", CopyProgram,
		pass.WithTargetMip(0, b.Downsample, 0),
		pass.WithTextureDefine(DefineInputTexture, b.Input),
		pass.WithRead(b.Input),
	)); err != nil {
		return fmt.Errorf("bloom downsample 0: %w", err)
	}

	for i := 1; i < b.mipCount; i++ {
		if err := ctx.Register(cfg.stage, pass.NewComposite(fmt.Sprintf("Bloom Downsample Pass %d", i), DownsampleProgram,
			pass.WithTargetMip(0, b.Downsample, i),
			pass.WithIntDefine(DefineCurrentLod, i),
			pass.WithIntDefine(DefineMaxLod, b.mipCount),
			pass.WithReadMip(b.Downsample, i-1),
		)); err != nil {
			return fmt.Errorf("bloom downsample %d: %w", i, err)
		}
	}
	return nil
}

func (b *Bloom) setupUpsampleChain(ctx graph.Context, cfg config) error {
	top := b.mipCount - 1

	// the seed copies the smallest downsample level with light filtering
	if err := ctx.Register(cfg.stage, pass.NewComposite(fmt.Sprintf("Bloom Upsample Pass %d", top), UpsampleFirstProgram,
		pass.WithTargetMip(0, b.Upsample, top),
		pass.WithIntDefine(DefineCurrentLod, top),
		pass.WithIntDefine(DefineMaxLod, b.mipCount),
		pass.WithReadMip(b.Downsample, top),
	)); err != nil {
		return fmt.Errorf("bloom upsample %d: %w", top, err)
	}

	for i := top - 1; i >= 0; i-- {
		if err := ctx.Register(cfg.stage, pass.NewComposite(fmt.Sprintf("Bloom Upsample Pass %d", i), UpsampleProgram,
			pass.WithTargetMip(0, b.Upsample, i),
			pass.WithIntDefine(DefineCurrentLod, i),
			pass.WithIntDefine(DefineMaxLod, b.mipCount),
			pass.WithReadMip(b.Upsample, i+1),
			pass.WithReadMip(b.Downsample, i),
		)); err != nil {
			return fmt.Errorf("bloom upsample %d: %w", i, err)
		}
	}
	return nil
}

func (b *Bloom) setupMerge(ctx graph.Context, cfg config) error {
	if err := ctx.Register(cfg.stage, pass.NewComposite("Bloom Merge Pass", MergeProgram,
		pass.WithTarget(0, b.Merge),
		pass.WithIntDefine(DefineMaxLod, b.mipCount),
		pass.WithTextureDefine(DefineInputTexture, b.Input),
		pass.WithReadMip(b.Upsample, 0),
		pass.WithRead(b.Input),
	)); err != nil {
		return fmt.Errorf("bloom merge: %w", err)
	}
	return nil
}

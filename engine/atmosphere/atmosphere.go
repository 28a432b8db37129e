// Package atmosphere declares the precomputed sky lookup tables of one or more named atmospheres. Each atmosphere is a
// fixed chain of three passes: transmittance, then scattering (sampling transmittance), then sky-view (sampling both).
package atmosphere

import (
	"fmt"
	"regexp"

	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// Program identifiers of the LUT chain.
const (
	TransmittanceProgram = "programs/atmosphere/transmittance.frag"
	ScatteringProgram    = "programs/atmosphere/scattering.frag"
	SkyViewProgram       = "programs/atmosphere/sky_view.frag"
)

// instance names become part of texture names injected into shader source, so they must be identifiers
var instanceName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Atmosphere holds the handles declared for one named atmosphere.
type Atmosphere struct {
	Name     string
	Settings Settings

	Transmittance texture.Handle
	Scattering    texture.Handle
	SkyView       texture.Handle
}

// Setup validates the settings, declares the three LUT textures prefixed with the instance name, and registers the
// transmittance, scattering and sky-view passes in that order.
//
// Parameters:
//   - ctx: the configuration context
//   - name: the instance name, e.g. "overworld"
//   - s: the physical settings
//   - opts: a variadic list of AtmosphereBuilderOption functions
//
// Returns:
//   - *Atmosphere: the declared handles
//   - error: ErrInvalidSettings, or a declaration/registration error
func Setup(ctx graph.Context, name string, s Settings, opts ...AtmosphereBuilderOption) (*Atmosphere, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !instanceName.MatchString(name) {
		return nil, fmt.Errorf("atmosphere name %q is not an identifier: %w", name, ErrInvalidSettings)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("atmosphere %q: %w", name, err)
	}
	if cfg.skyViewStage <= cfg.lutStage {
		return nil, fmt.Errorf("atmosphere %q: sky-view stage %s not after LUT stage %s: %w", name, cfg.skyViewStage, cfg.lutStage, graph.ErrUnorderedDependency)
	}

	a := &Atmosphere{Name: name, Settings: s}
	settings := s.defineOptions()

	if err := a.setupTransmittance(ctx, cfg, settings); err != nil {
		return nil, err
	}
	if err := a.setupScattering(ctx, cfg, settings); err != nil {
		return nil, err
	}
	if err := a.setupSkyView(ctx, cfg, settings); err != nil {
		return nil, err
	}
	ctx.Logger().Debug("atmosphere configured", "instance", name)
	return a, nil
}

func (a *Atmosphere) declare(ctx graph.Context, suffix string, sz size, f texture.Format) (texture.Handle, error) {
	if sz.width <= 0 || sz.height <= 0 {
		return texture.Handle{}, fmt.Errorf("atmosphere %q: %s size %dx%d: %w", a.Name, suffix, sz.width, sz.height, ErrInvalidSettings)
	}
	h, err := ctx.Declare(texture.NewTexture(a.Name+suffix,
		texture.WithFormat(f),
		texture.WithFixedSize(sz.width, sz.height),
		texture.WithClear(false),
	))
	if err != nil {
		return texture.Handle{}, fmt.Errorf("atmosphere %q: %w", a.Name, err)
	}
	return h, nil
}

func (a *Atmosphere) setupTransmittance(ctx graph.Context, cfg config, settings pass.PassBuilderOption) error {
	var err error
	if a.Transmittance, err = a.declare(ctx, "TransmittanceTexture", cfg.transmittance, cfg.format); err != nil {
		return err
	}
	return ctx.Register(cfg.lutStage, pass.NewComposite(a.Name+" Transmittance LUT", TransmittanceProgram,
		pass.WithTarget(0, a.Transmittance),
		settings,
	))
}

func (a *Atmosphere) setupScattering(ctx graph.Context, cfg config, settings pass.PassBuilderOption) error {
	var err error
	if a.Scattering, err = a.declare(ctx, "ScatteringTexture", cfg.scattering, cfg.format); err != nil {
		return err
	}
	return ctx.Register(cfg.lutStage, pass.NewComposite(a.Name+" Scattering LUT", ScatteringProgram,
		pass.WithTarget(0, a.Scattering),
		settings,
		pass.WithTextureDefine(DefineTransmittanceTexture, a.Transmittance),
		pass.WithRead(a.Transmittance),
	))
}

func (a *Atmosphere) setupSkyView(ctx graph.Context, cfg config, settings pass.PassBuilderOption) error {
	var err error
	if a.SkyView, err = a.declare(ctx, "SkyViewTexture", cfg.skyView, cfg.format); err != nil {
		return err
	}
	return ctx.Register(cfg.skyViewStage, pass.NewComposite(a.Name+" Sky-View LUT", SkyViewProgram,
		pass.WithTarget(0, a.SkyView),
		settings,
		pass.WithTextureDefine(DefineTransmittanceTexture, a.Transmittance),
		pass.WithTextureDefine(DefineScatteringTexture, a.Scattering),
		pass.WithRead(a.Transmittance),
		pass.WithRead(a.Scattering),
	))
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/atmosphere"
	"github.com/Carmen-Shannon/oxy-graph/engine/gbuffer"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
)

// ErrInvalidPolicy is returned when a policy selects generators whose wiring cannot be satisfied.
var ErrInvalidPolicy = errors.New("invalid pipeline policy")

// BloomInput selects which texture the bloom chain reads from.
type BloomInput string

const (
	// BloomInputAlbedo feeds bloom with the solid terrain albedo, or the first category's albedo without one.
	BloomInputAlbedo BloomInput = "albedo"

	// BloomInputSort feeds bloom with the composite sort output. Requires CompositeSort.
	BloomInputSort BloomInput = "sort"
)

// AtmosphereInstance is one named atmosphere of a pipeline.
type AtmosphereInstance struct {
	Name     string              `toml:"name" yaml:"name"`
	Settings atmosphere.Settings `toml:"settings" yaml:"settings"`
}

// Policy selects which generators run and with what parameters. The stock variants differ only in their Policy.
type Policy struct {
	// Name labels the policy in logs.
	Name string `toml:"name" yaml:"name"`
	// World is written into the backend's settings sink.
	World common.WorldSettings `toml:"world" yaml:"world"`
	// Gbuffer is the G-buffer allocation policy.
	Gbuffer gbuffer.Policy `toml:"gbuffer" yaml:"gbuffer"`
	// Atmospheres lists the atmosphere instances, in registration order.
	Atmospheres []AtmosphereInstance `toml:"atmospheres" yaml:"atmospheres"`
	// CompositeSort enables the transparency resolve stage.
	CompositeSort bool `toml:"composite_sort" yaml:"compositeSort"`
	// Bloom enables the bloom chain.
	Bloom bool `toml:"bloom" yaml:"bloom"`
	// BloomInput selects the bloom source texture.
	BloomInput BloomInput `toml:"bloom_input" yaml:"bloomInput"`
}

// DefaultPolicy is the four channel G-buffer with bloom applied to the solid terrain albedo.
func DefaultPolicy() Policy {
	return Policy{
		Name:       "default",
		World:      common.DefaultWorldSettings(),
		Gbuffer:    gbuffer.DefaultPolicy(),
		Bloom:      true,
		BloomInput: BloomInputAlbedo,
	}
}

// ThreeChannelPolicy packs atlas coordinates into albedo and normal alpha and skips post-processing apart from the
// final pass.
func ThreeChannelPolicy() Policy {
	p := DefaultPolicy()
	p.Name = "three-channel"
	p.Gbuffer.Layout = gbuffer.ThreeChannelLayout()
	p.Bloom = false
	return p
}

// AtmospherePolicy is DefaultPolicy with an Earth-like "overworld" atmosphere.
func AtmospherePolicy() Policy {
	p := DefaultPolicy()
	p.Name = "atmosphere"
	p.Atmospheres = []AtmosphereInstance{{Name: "overworld", Settings: atmosphere.DefaultSettings()}}
	return p
}

// SortedPolicy resolves transparency before bloom and feeds bloom with the sorted result.
func SortedPolicy() Policy {
	p := AtmospherePolicy()
	p.Name = "sorted"
	p.CompositeSort = true
	p.BloomInput = BloomInputSort
	return p
}

// Presets returns the stock policies by name.
func Presets() map[string]Policy {
	return map[string]Policy{
		"default":       DefaultPolicy(),
		"three-channel": ThreeChannelPolicy(),
		"atmosphere":    AtmospherePolicy(),
		"sorted":        SortedPolicy(),
	}
}

// Preset returns a stock policy by name.
//
// Parameters:
//   - name: the preset name, case-insensitive
//
// Returns:
//   - Policy: the preset
//   - error: error wrapping ErrInvalidPolicy if unknown
func Preset(name string) (Policy, error) {
	p, ok := Presets()[strings.ToLower(name)]
	if !ok {
		return Policy{}, fmt.Errorf("unknown preset %q: %w", name, ErrInvalidPolicy)
	}
	return p, nil
}

// Validate checks the cross-generator wiring of the policy. Generator-local checks (G-buffer layout, atmosphere
// physics) run inside the generators themselves.
//
// Returns:
//   - error: every problem found, joined and wrapping ErrInvalidPolicy
func (p Policy) Validate() error {
	var errs []error
	if p.Bloom {
		switch p.BloomInput {
		case BloomInputAlbedo, "":
		case BloomInputSort:
			if !p.CompositeSort {
				errs = append(errs, fmt.Errorf("bloom input %q requires composite sort: %w", p.BloomInput, ErrInvalidPolicy))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown bloom input %q: %w", p.BloomInput, ErrInvalidPolicy))
		}
	}
	if p.CompositeSort {
		if !p.hasUsage(pass.UsageTerrainSolid) || !p.hasUsage(pass.UsageTerrainTranslucent) {
			errs = append(errs, fmt.Errorf("composite sort requires solid and translucent terrain categories: %w", ErrInvalidPolicy))
		}
	}
	names := make(map[string]struct{}, len(p.Atmospheres))
	for _, a := range p.Atmospheres {
		if _, dup := names[a.Name]; dup {
			errs = append(errs, fmt.Errorf("atmosphere %q repeated: %w", a.Name, ErrInvalidPolicy))
		}
		names[a.Name] = struct{}{}
	}
	return errors.Join(errs...)
}

func (p Policy) hasUsage(u pass.Usage) bool {
	for _, c := range p.Gbuffer.Categories {
		if c.Usage == u {
			return true
		}
	}
	return false
}

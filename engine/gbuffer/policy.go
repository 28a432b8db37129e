package gbuffer

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// ErrInvalidPolicy is returned when a G-buffer policy cannot produce a consistent layout.
var ErrInvalidPolicy = errors.New("invalid gbuffer policy")

var identifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Channel is one texture of a G-buffer set. Its position in the layout is its target slot.
type Channel struct {
	// Suffix names the channel, e.g. "Albedo". Texture names are prefix + Suffix + "Texture".
	Suffix string `toml:"suffix" yaml:"suffix"`
	// Format is the pixel format of the channel.
	Format texture.Format `toml:"format" yaml:"format"`
}

// Category is one geometry usage category that receives its own texture set and object pass.
type Category struct {
	// Prefix is prepended to every texture name of the set, e.g. "solid".
	Prefix string `toml:"prefix" yaml:"prefix"`
	// Usage is the geometry usage routed to the category's object pass.
	Usage pass.Usage `toml:"usage" yaml:"usage"`
}

// Policy selects which categories exist and which channels each category carries. Every category uses the same layout,
// so target slots mean the same thing in every object pass of a configuration.
type Policy struct {
	Categories []Category `toml:"categories" yaml:"categories"`
	Layout     []Channel  `toml:"layout" yaml:"layout"`
	// ClearColor is the value every channel clears to each frame. Nil clears to the backend default.
	ClearColor *common.ClearColor `toml:"clear_color,omitempty" yaml:"clearColor,omitempty"`
}

// Channel suffixes of the stock layouts.
const (
	Albedo   = "Albedo"
	Normal   = "Normal"
	Light    = "Light"
	Material = "Material"
)

// FourChannelLayout stores albedo, normal, lighting terms (block light, sky light, AO) and material atlas coordinates.
func FourChannelLayout() []Channel {
	return []Channel{
		{Suffix: Albedo, Format: texture.FormatRGBA8},
		{Suffix: Normal, Format: texture.FormatRGBA8},
		{Suffix: Light, Format: texture.FormatRGBA8},
		{Suffix: Material, Format: texture.FormatRGBA8},
	}
}

// ThreeChannelLayout packs the atlas coordinates into the alpha channels of albedo and normal, leaving a material slot.
func ThreeChannelLayout() []Channel {
	return []Channel{
		{Suffix: Albedo, Format: texture.FormatRGBA8},
		{Suffix: Normal, Format: texture.FormatRGBA8},
		{Suffix: Material, Format: texture.FormatRGBA8},
	}
}

// DefaultCategories returns the solid terrain, translucent terrain and basic geometry categories.
func DefaultCategories() []Category {
	return []Category{
		{Prefix: "solid", Usage: pass.UsageTerrainSolid},
		{Prefix: "translucent", Usage: pass.UsageTerrainTranslucent},
		{Prefix: "basic", Usage: pass.UsageBasic},
	}
}

// DefaultPolicy returns the default categories with the four channel layout.
func DefaultPolicy() Policy {
	return Policy{
		Categories: DefaultCategories(),
		Layout:     FourChannelLayout(),
	}
}

// Validate checks that the policy has at least one category and channel, that names are identifiers, and that no
// prefix, usage or suffix repeats.
//
// Returns:
//   - error: every problem found, joined and wrapping ErrInvalidPolicy
func (p Policy) Validate() error {
	var errs []error
	if len(p.Categories) == 0 {
		errs = append(errs, fmt.Errorf("no categories: %w", ErrInvalidPolicy))
	}
	if len(p.Layout) == 0 {
		errs = append(errs, fmt.Errorf("empty layout: %w", ErrInvalidPolicy))
	}

	prefixes := make(map[string]struct{})
	usages := make(map[pass.Usage]struct{})
	for _, c := range p.Categories {
		if !identifier.MatchString(c.Prefix) {
			errs = append(errs, fmt.Errorf("category prefix %q is not an identifier: %w", c.Prefix, ErrInvalidPolicy))
		}
		if c.Usage == pass.UsageNone {
			errs = append(errs, fmt.Errorf("category %q has no usage: %w", c.Prefix, ErrInvalidPolicy))
		}
		if _, dup := prefixes[c.Prefix]; dup {
			errs = append(errs, fmt.Errorf("category prefix %q repeated: %w", c.Prefix, ErrInvalidPolicy))
		}
		if _, dup := usages[c.Usage]; dup {
			errs = append(errs, fmt.Errorf("usage %s repeated: %w", c.Usage, ErrInvalidPolicy))
		}
		prefixes[c.Prefix] = struct{}{}
		usages[c.Usage] = struct{}{}
	}

	suffixes := make(map[string]struct{})
	for _, ch := range p.Layout {
		if !identifier.MatchString(ch.Suffix) {
			errs = append(errs, fmt.Errorf("channel suffix %q is not an identifier: %w", ch.Suffix, ErrInvalidPolicy))
		}
		if _, dup := suffixes[ch.Suffix]; dup {
			errs = append(errs, fmt.Errorf("channel suffix %q repeated: %w", ch.Suffix, ErrInvalidPolicy))
		}
		suffixes[ch.Suffix] = struct{}{}
	}
	return errors.Join(errs...)
}

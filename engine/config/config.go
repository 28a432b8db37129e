// Package config loads pipeline policies from TOML files and watches them for changes.
//
// A policy file starts from a stock preset and overrides any subset of its fields:
//
//	preset = "sorted"
//	bloom = false
//
//	[world]
//	ambient_occlusion_level = 0.5
//
//	[[atmospheres]]
//	name = "nether"
//	[atmospheres.settings]
//	planet_radius = 1000.0
//	atmosphere_radius = 1040.0
//
// Lists (gbuffer categories, gbuffer layout, atmospheres) replace the preset's list as a whole. Atmosphere settings
// that are left out keep the Earth-like defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/atmosphere"
	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a policy file cannot be decoded.
var ErrInvalidConfig = errors.New("invalid policy file")

// DefaultPreset is the preset a policy file without a preset key starts from.
const DefaultPreset = "default"

type header struct {
	Preset string `toml:"preset"`
}

type rawAtmospheres struct {
	Atmospheres []map[string]any `toml:"atmospheres"`
}

type document struct {
	Preset string `toml:"preset"`
	pipeline.Policy
}

// Parse decodes a policy from TOML.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - pipeline.Policy: the preset named by the document with the document's fields applied
//   - error: error wrapping ErrInvalidConfig or pipeline.ErrInvalidPolicy
func Parse(data []byte) (pipeline.Policy, error) {
	var h header
	if err := toml.Unmarshal(data, &h); err != nil {
		return pipeline.Policy{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	base, err := pipeline.Preset(common.Coalesce(h.Preset, DefaultPreset))
	if err != nil {
		return pipeline.Policy{}, err
	}

	// lists are decoded fresh and fall back to the preset's when absent
	doc := document{Policy: base}
	doc.Gbuffer.Categories = nil
	doc.Gbuffer.Layout = nil
	doc.Atmospheres = nil
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return pipeline.Policy{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return pipeline.Policy{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p := doc.Policy
	if p.Gbuffer.Categories == nil {
		p.Gbuffer.Categories = base.Gbuffer.Categories
	}
	if p.Gbuffer.Layout == nil {
		p.Gbuffer.Layout = base.Gbuffer.Layout
	}

	var raw rawAtmospheres
	if err := toml.Unmarshal(data, &raw); err != nil {
		return pipeline.Policy{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if raw.Atmospheres == nil {
		p.Atmospheres = base.Atmospheres
	} else {
		p.Atmospheres, err = decodeAtmospheres(raw.Atmospheres)
		if err != nil {
			return pipeline.Policy{}, err
		}
	}
	return p, nil
}

// Load reads and decodes a policy file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - pipeline.Policy: the decoded policy
//   - error: a read error, or a decode error as returned by Parse
func Load(path string) (pipeline.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Policy{}, err
	}
	p, err := Parse(data)
	if err != nil {
		return pipeline.Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes a policy as a complete TOML document that Parse reads back unchanged.
//
// Parameters:
//   - p: the policy
//
// Returns:
//   - []byte: the TOML document
//   - error: an encoding error
func Encode(p pipeline.Policy) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeAtmospheres re-encodes every instance's settings table and decodes it over the default settings.
func decodeAtmospheres(raw []map[string]any) ([]pipeline.AtmosphereInstance, error) {
	out := make([]pipeline.AtmosphereInstance, 0, len(raw))
	for i, m := range raw {
		inst := pipeline.AtmosphereInstance{Settings: atmosphere.DefaultSettings()}
		for k := range m {
			if k != "name" && k != "settings" {
				return nil, fmt.Errorf("%w: atmospheres[%d]: unknown key %q", ErrInvalidConfig, i, k)
			}
		}
		name, ok := m["name"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: atmospheres[%d]: missing name", ErrInvalidConfig, i)
		}
		inst.Name = name
		if settings, ok := m["settings"].(map[string]any); ok {
			data, err := toml.Marshal(settings)
			if err != nil {
				return nil, fmt.Errorf("%w: atmosphere %q: %w", ErrInvalidConfig, name, err)
			}
			dec := toml.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&inst.Settings); err != nil {
				return nil, fmt.Errorf("%w: atmosphere %q: %w", ErrInvalidConfig, name, err)
			}
		}
		out = append(out, inst)
	}
	return out, nil
}

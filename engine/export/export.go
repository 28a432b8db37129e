// Package export writes a configured graph as a YAML document for inspection and diffing.
package export

import (
	"bytes"
	"io"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"gopkg.in/yaml.v3"
)

// Texture is the exported form of one declared texture, sized for the graph's resolution.
type Texture struct {
	Name       string             `yaml:"name"`
	Format     string             `yaml:"format"`
	Dimension  string             `yaml:"dimension"`
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	Mips       int                `yaml:"mips"`
	Clear      bool               `yaml:"clear"`
	ClearColor *common.ClearColor `yaml:"clearColor,omitempty,flow"`
}

// Pass is the exported form of one registered pass.
type Pass struct {
	Name     string            `yaml:"name"`
	Stage    string            `yaml:"stage"`
	Index    int               `yaml:"index"`
	Kind     string            `yaml:"kind"`
	Usage    string            `yaml:"usage,omitempty"`
	Vertex   string            `yaml:"vertex,omitempty"`
	Fragment string            `yaml:"fragment"`
	Targets  []pass.Target     `yaml:"targets,omitempty"`
	Reads    []pass.Read       `yaml:"reads,omitempty"`
	Defines  map[string]string `yaml:"defines,omitempty"`
}

// Document is the exported form of a graph. Passes are listed in execution order.
type Document struct {
	Resolution common.Resolution    `yaml:"resolution"`
	World      common.WorldSettings `yaml:"world"`
	Textures   []Texture            `yaml:"textures"`
	Passes     []Pass               `yaml:"passes"`
}

// Build converts a graph into its exported form.
//
// Parameters:
//   - g: the graph
//
// Returns:
//   - Document: the exported document
func Build(g *graph.Graph) Document {
	res := g.Resolution()
	doc := Document{
		Resolution: res,
		World:      g.WorldSettings(),
	}
	for _, t := range g.Textures() {
		w, h := t.Size(res)
		et := Texture{
			Name:      t.Name(),
			Format:    t.Format().String(),
			Dimension: t.Dimension().String(),
			Width:     w,
			Height:    h,
			Mips:      t.MipCount(res),
			Clear:     t.Clear(),
		}
		if c, ok := t.ClearColor(); ok {
			et.ClearColor = &c
		}
		doc.Textures = append(doc.Textures, et)
	}
	for _, e := range g.Passes() {
		p := e.Pass
		ep := Pass{
			Name:     p.Name(),
			Stage:    e.Stage.String(),
			Index:    e.Index,
			Kind:     p.Kind().String(),
			Vertex:   p.VertexSource(),
			Fragment: p.FragmentSource(),
			Targets:  p.Targets(),
			Reads:    p.Reads(),
			Defines:  p.Defines(),
		}
		if p.Usage() != pass.UsageNone {
			ep.Usage = p.Usage().String()
		}
		doc.Passes = append(doc.Passes, ep)
	}
	return doc
}

// Write encodes a graph as YAML.
//
// Parameters:
//   - w: the destination
//   - g: the graph
//
// Returns:
//   - error: an encoding or write error
func Write(w io.Writer, g *graph.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Build(g)); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal encodes a graph as YAML.
//
// Parameters:
//   - g: the graph
//
// Returns:
//   - []byte: the YAML document
//   - error: an encoding error
func Marshal(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document written by Write.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Document: the decoded document
//   - error: a decoding error
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	err := yaml.Unmarshal(data, &doc)
	return doc, err
}

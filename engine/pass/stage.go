package pass

import "fmt"

// Stage is the coarse ordering bucket a pass executes in. Passes run ordered first by Stage, then by registration order
// within the stage.
type Stage int

const (
	// StageSetup runs once after every (re)configuration, before any frame is drawn. Used for precomputed lookup tables.
	StageSetup Stage = iota

	// StagePreRender runs every frame before geometry is drawn.
	StagePreRender

	// StageGeometry runs every frame and holds the object passes geometry is routed to.
	StageGeometry

	// StagePostRender runs every frame after geometry, for full-screen post-processing.
	StagePostRender

	// StageFinal holds the single combination pass that writes to the display surface.
	StageFinal

	// StageCount is the number of stages. It is not a valid stage.
	StageCount
)

var stageNames = [StageCount]string{
	StageSetup:      "setup",
	StagePreRender:  "pre-render",
	StageGeometry:   "geometry",
	StagePostRender: "post-render",
	StageFinal:      "final",
}

// Valid reports whether s is one of the declared stages.
func (s Stage) Valid() bool {
	return s >= StageSetup && s < StageCount
}

// String returns the stage name.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(s.String()), nil
}

// Stages returns every valid stage in execution order.
//
// Returns:
//   - []Stage: setup, pre-render, geometry, post-render, final
func Stages() []Stage {
	out := make([]Stage, 0, StageCount)
	for s := StageSetup; s < StageCount; s++ {
		out = append(out, s)
	}
	return out
}

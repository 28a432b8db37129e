package registry

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
)

// Entry is a registered pass together with its position in the execution order.
type Entry struct {
	// Stage is the bucket the pass was registered into.
	Stage pass.Stage
	// Index is the registration index within the stage.
	Index int
	// Pass is the registered declaration.
	Pass pass.Pass
}

// passRegistry is the implementation of the PassRegistry interface.
type passRegistry struct {
	stages [pass.StageCount][]pass.Pass
	count  int
}

// PassRegistry is the ordered, per-stage store of pass declarations. The backend executes stages in enum order and the
// passes of a stage in registration order. No reference validation happens here.
type PassRegistry interface {
	// Register appends a pass to the stage's ordered list.
	//
	// Parameters:
	//   - stage: the stage bucket
	//   - p: the pass declaration
	//
	// Returns:
	//   - error: ErrInvalidStage or ErrNilPass
	Register(stage pass.Stage, p pass.Pass) error

	// Stage returns the passes registered in a stage, in registration order. The returned slice is a copy.
	//
	// Parameters:
	//   - stage: the stage bucket
	//
	// Returns:
	//   - []pass.Pass: the passes, nil for invalid stages
	Stage(stage pass.Stage) []pass.Pass

	// Ordered returns every pass in total execution order.
	//
	// Returns:
	//   - []Entry: entries ordered by stage, then registration index
	Ordered() []Entry

	// Len returns the number of registered passes across all stages.
	Len() int
}

var _ PassRegistry = &passRegistry{}

// NewPassRegistry creates an empty PassRegistry.
//
// Returns:
//   - PassRegistry: the registry
func NewPassRegistry() PassRegistry {
	return &passRegistry{}
}

func (r *passRegistry) Register(stage pass.Stage, p pass.Pass) error {
	if !stage.Valid() {
		return fmt.Errorf("register %d: %w", int(stage), ErrInvalidStage)
	}
	if p == nil {
		return ErrNilPass
	}
	r.stages[stage] = append(r.stages[stage], p)
	r.count++
	return nil
}

func (r *passRegistry) Stage(stage pass.Stage) []pass.Pass {
	if !stage.Valid() {
		return nil
	}
	return slices.Clone(r.stages[stage])
}

func (r *passRegistry) Ordered() []Entry {
	out := make([]Entry, 0, r.count)
	for _, s := range pass.Stages() {
		for i, p := range r.stages[s] {
			out = append(out, Entry{Stage: s, Index: i, Pass: p})
		}
	}
	return out
}

func (r *passRegistry) Len() int {
	return r.count
}

package graph

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/pass"
	"github.com/Carmen-Shannon/oxy-graph/engine/registry"
	"github.com/Carmen-Shannon/oxy-graph/engine/texture"
)

// writeSet tracks which mip levels of each texture have been written by passes earlier in execution order.
type writeSet map[string]map[int]struct{}

func (w writeSet) add(name string, level int) {
	levels, ok := w[name]
	if !ok {
		levels = make(map[int]struct{})
		w[name] = levels
	}
	levels[level] = struct{}{}
}

func (w writeSet) has(r pass.Read) bool {
	levels, ok := w[r.Texture]
	if !ok {
		return false
	}
	if !r.HasMip {
		return len(levels) > 0
	}
	_, ok = levels[r.Mip]
	return ok
}

// validate walks the passes in execution order and checks every texture reference against the registry.
// Reads are checked against the writes of strictly earlier passes, which makes construction order the checked
// dependency order.
func validate(res common.Resolution, resources registry.ResourceRegistry, entries []registry.Entry) error {
	var errs []error
	written := make(writeSet)
	finals := 0

	for _, e := range entries {
		p := e.Pass
		where := fmt.Sprintf("%s pass %d %q", e.Stage, e.Index, p.Name())

		switch p.Kind() {
		case pass.KindCombination:
			finals++
			if finals > 1 {
				errs = append(errs, fmt.Errorf("%s: %w", where, ErrMultipleFinalPasses))
			}
			if e.Stage != pass.StageFinal {
				errs = append(errs, fmt.Errorf("%s: %s in %s: %w", where, p.Kind(), e.Stage, ErrStageMismatch))
			}
		case pass.KindObject:
			if e.Stage != pass.StageGeometry {
				errs = append(errs, fmt.Errorf("%s: %s in %s: %w", where, p.Kind(), e.Stage, ErrStageMismatch))
			}
		case pass.KindComposite:
			if e.Stage == pass.StageFinal || e.Stage == pass.StageGeometry {
				errs = append(errs, fmt.Errorf("%s: %s in %s: %w", where, p.Kind(), e.Stage, ErrStageMismatch))
			}
		}

		for _, ref := range p.TextureRefs() {
			if _, ok := resources.Lookup(ref.Texture); !ok {
				errs = append(errs, fmt.Errorf("%s: define %s names %q: %w", where, ref.Define, ref.Texture, ErrDanglingReference))
			}
		}

		for _, r := range p.Reads() {
			t, ok := resources.Lookup(r.Texture)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: reads %q: %w", where, r.Texture, ErrDanglingReference))
				continue
			}
			if r.HasMip {
				if err := checkMip(t, r.Mip, res); err != nil {
					errs = append(errs, fmt.Errorf("%s: reads %q: %w", where, r.Texture, err))
					continue
				}
			}
			if !written.has(r) {
				errs = append(errs, fmt.Errorf("%s: reads %q level %d: %w", where, r.Texture, r.Mip, ErrUnorderedDependency))
			}
		}

		slots := make(map[int]struct{}, len(p.Targets()))
		for _, tg := range p.Targets() {
			if _, dup := slots[tg.Slot]; dup {
				errs = append(errs, fmt.Errorf("%s: slot %d: %w", where, tg.Slot, ErrDuplicateSlot))
			}
			slots[tg.Slot] = struct{}{}

			t, ok := resources.Lookup(tg.Texture)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: slot %d targets %q: %w", where, tg.Slot, tg.Texture, ErrDanglingReference))
				continue
			}
			if tg.HasMip {
				if err := checkMip(t, tg.Mip, res); err != nil {
					errs = append(errs, fmt.Errorf("%s: slot %d targets %q: %w", where, tg.Slot, tg.Texture, err))
					continue
				}
			}
		}

		// writes become visible only to later passes
		for _, tg := range p.Targets() {
			written.add(tg.Texture, tg.Level())
		}
	}

	return errors.Join(errs...)
}

func checkMip(t texture.Texture, mip int, res common.Resolution) error {
	if !t.Mipmap() {
		return fmt.Errorf("level %d on texture without mipmaps: %w", mip, ErrMipOutOfRange)
	}
	if n := t.MipCount(res); mip < 0 || mip >= n {
		return fmt.Errorf("level %d of %d: %w", mip, n, ErrMipOutOfRange)
	}
	return nil
}

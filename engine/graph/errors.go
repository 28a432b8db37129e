package graph

import "errors"

var (
	// ErrDanglingReference is returned when a target, texture define or read names a texture that was never declared.
	ErrDanglingReference = errors.New("dangling texture reference")

	// ErrMipOutOfRange is returned when a mip level is referenced on a texture without mipmaps, or at or beyond its mip count.
	ErrMipOutOfRange = errors.New("mip level out of range")

	// ErrMultipleFinalPasses is returned when more than one combination pass is registered in one configuration.
	ErrMultipleFinalPasses = errors.New("multiple final passes")

	// ErrUnorderedDependency is returned when a pass samples a texture level that no earlier pass in execution order writes.
	ErrUnorderedDependency = errors.New("texture read before any write")

	// ErrStageMismatch is returned when a pass kind is registered into a stage it cannot execute in.
	ErrStageMismatch = errors.New("pass kind not allowed in stage")

	// ErrDuplicateSlot is returned when a pass binds the same output slot twice.
	ErrDuplicateSlot = errors.New("duplicate target slot")

	// ErrSealed is returned when a context is mutated after Build.
	ErrSealed = errors.New("configuration context already built")
)

package registry

import "errors"

var (
	// ErrDuplicateResource is returned when a texture name is declared twice in one configuration.
	ErrDuplicateResource = errors.New("duplicate resource name")

	// ErrEmptyName is returned when a texture is declared without a name.
	ErrEmptyName = errors.New("resource name is empty")

	// ErrInvalidStage is returned when a pass is registered into a stage outside the declared enumeration.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrNilPass is returned when a nil pass is registered.
	ErrNilPass = errors.New("pass is nil")
)

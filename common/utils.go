package common

import "math/bits"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MipCount returns floor(log2(max(width, height))) clamped to a minimum of 1.
// The computation is done on integers so exact powers of two never round down.
//
// Parameters:
//   - width: the base level width in pixels
//   - height: the base level height in pixels
//
// Returns:
//   - int: the number of mip levels, always >= 1
func MipCount(width, height int) int {
	m := max(width, height)
	if m < 2 {
		return 1
	}
	return bits.Len(uint(m)) - 1
}

// LevelSize returns the size of a single dimension at the given mip level, clamped to a minimum of 1.
//
// Parameters:
//   - size: the base level size in pixels
//   - lod: the mip level
//
// Returns:
//   - int: size >> lod, at least 1
func LevelSize(size, lod int) int {
	if lod < 0 {
		lod = 0
	}
	return max(size>>uint(lod), 1)
}

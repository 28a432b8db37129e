package pass

import (
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// FormatFloat renders a scalar as a shader float literal. The result always contains a decimal point or an exponent so
// the shader compiler never reads it as an integer.
//
// Parameters:
//   - v: the value
//
// Returns:
//   - string: the literal, e.g. "6360.0" or "0.0058"
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// FormatInt renders an integer literal.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatBool renders a boolean literal.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

// FormatVec3 renders a 3-component vector as a literal constructor.
//
// Parameters:
//   - v: the vector
//
// Returns:
//   - string: the literal, e.g. "vec3(0.0, -6360.0, 0.0)"
func FormatVec3(v common.Vec3) string {
	return "vec3(" + FormatFloat(v[0]) + ", " + FormatFloat(v[1]) + ", " + FormatFloat(v[2]) + ")"
}

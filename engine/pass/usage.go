package pass

import (
	"fmt"
	"strings"
)

// Usage is the geometry category an object pass is bound to. The backend routes each mesh to the object pass whose
// Usage matches the mesh's category; this package only declares the association.
type Usage int

const (
	// UsageNone marks passes that are not bound to geometry.
	UsageNone Usage = iota

	// UsageTerrainSolid is opaque terrain.
	UsageTerrainSolid

	// UsageTerrainTranslucent is translucent terrain such as water and stained glass.
	UsageTerrainTranslucent

	// UsageBasic is generic geometry without a dedicated program.
	UsageBasic

	// UsageEntity is animated entity geometry.
	UsageEntity
)

var usageNames = map[Usage]string{
	UsageNone:               "none",
	UsageTerrainSolid:       "terrain_solid",
	UsageTerrainTranslucent: "terrain_translucent",
	UsageBasic:              "basic",
	UsageEntity:             "entity",
}

// String returns the usage name.
func (u Usage) String() string {
	if n, ok := usageNames[u]; ok {
		return n
	}
	return fmt.Sprintf("Usage(%d)", int(u))
}

// MarshalText implements encoding.TextMarshaler.
func (u Usage) MarshalText() ([]byte, error) {
	if _, ok := usageNames[u]; !ok {
		return nil, fmt.Errorf("invalid usage %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Usage) UnmarshalText(text []byte) error {
	n := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range usageNames {
		if v == n {
			*u = k
			return nil
		}
	}
	return fmt.Errorf("unknown geometry usage %q", string(text))
}

package geometry

import (
	"strconv"
	"strings"
)

// Transform is a 3MF affine transformation matrix in the order
// m11 m12 m13 m21 m22 m23 m31 m32 m33 tx ty tz
type Transform [12]float64

// Identity returns the identity transform
func Identity() Transform {
	return Transform{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}
}

// Translation creates a simple translation transform (no rotation)
func Translation(tx, ty, tz float64) Transform {
	t := Identity()
	t[9], t[10], t[11] = tx, ty, tz
	return t
}

// Offset returns the translation part of the transform
func (t Transform) Offset() (dx, dy, dz float64) {
	return t[9], t[10], t[11]
}

// IsIdentity reports whether t is the identity transform
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// String formats the transform as a 3MF transform attribute
func (t Transform) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = formatMatrixValue(v)
	}
	return strings.Join(parts, " ")
}

func formatMatrixValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

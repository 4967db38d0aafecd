package geometry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// PolyhedralMesh is an indexed polygon mesh with optional per-face colors
type PolyhedralMesh struct {
	Vertices []r3.Vec
	Faces    [][]int
	// ColorIndices is either empty or has one entry per face. -1 means no color.
	ColorIndices []int
	Colors       []Color
}

// VertexCount returns the number of vertices
func (m *PolyhedralMesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces
func (m *PolyhedralMesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no faces
func (m *PolyhedralMesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// IsTriangulated reports whether every face has exactly three indices
func (m *PolyhedralMesh) IsTriangulated() bool {
	for _, face := range m.Faces {
		if len(face) != 3 {
			return false
		}
	}
	return true
}

// ColorIndex returns the color index of face i, or -1 if the face has none
func (m *PolyhedralMesh) ColorIndex(i int) int {
	if i < len(m.ColorIndices) {
		return m.ColorIndices[i]
	}
	return -1
}

// Validate checks vertex and color index bounds
func (m *PolyhedralMesh) Validate() error {
	if len(m.ColorIndices) > 0 && len(m.ColorIndices) != len(m.Faces) {
		return fmt.Errorf("color index count %d does not match face count %d", len(m.ColorIndices), len(m.Faces))
	}

	for i, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(m.Vertices))
			}
		}
	}

	for i, ci := range m.ColorIndices {
		if ci < -1 || ci >= len(m.Colors) {
			return fmt.Errorf("face %d: color index %d out of range [-1, %d)", i, ci, len(m.Colors))
		}
	}

	return nil
}

// Clone returns a deep copy of the mesh
func (m *PolyhedralMesh) Clone() *PolyhedralMesh {
	out := &PolyhedralMesh{
		Vertices: append([]r3.Vec(nil), m.Vertices...),
		Faces:    make([][]int, len(m.Faces)),
		Colors:   append([]Color(nil), m.Colors...),
	}
	for i, face := range m.Faces {
		out.Faces[i] = append([]int(nil), face...)
	}
	if len(m.ColorIndices) > 0 {
		out.ColorIndices = append([]int(nil), m.ColorIndices...)
	}
	return out
}

// Triangulated returns a mesh with every polygon split into a triangle fan.
// Each triangle keeps the color index of its source face. Faces with fewer
// than three indices are dropped. A mesh that is already triangulated is
// returned as is.
func (m *PolyhedralMesh) Triangulated() *PolyhedralMesh {
	if m.IsTriangulated() {
		return m
	}

	out := &PolyhedralMesh{
		Vertices: m.Vertices,
		Colors:   m.Colors,
	}
	hasColors := len(m.ColorIndices) > 0

	for i, face := range m.Faces {
		for j := 1; j+1 < len(face); j++ {
			out.Faces = append(out.Faces, []int{face[0], face[j], face[j+1]})
			if hasColors {
				out.ColorIndices = append(out.ColorIndices, m.ColorIndices[i])
			}
		}
	}

	return out
}

// Sorted returns a copy of a triangulated mesh in canonical order: vertices
// sorted by position with coincident vertices merged, each face rotated to
// start at its smallest index (keeping the winding) and faces sorted by their
// indices and colors. Color indices follow their faces.
func (m *PolyhedralMesh) Sorted() *PolyhedralMesh {
	order := make([]int, len(m.Vertices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lessVec(m.Vertices[order[a]], m.Vertices[order[b]])
	})

	remap := make([]int, len(m.Vertices))
	out := &PolyhedralMesh{
		Vertices: make([]r3.Vec, 0, len(m.Vertices)),
		Colors:   append([]Color(nil), m.Colors...),
	}
	for _, oldIdx := range order {
		v := m.Vertices[oldIdx]
		if n := len(out.Vertices); n == 0 || out.Vertices[n-1] != v {
			// adding zero turns -0 into 0
			out.Vertices = append(out.Vertices, r3.Vec{X: v.X + 0, Y: v.Y + 0, Z: v.Z + 0})
		}
		remap[oldIdx] = len(out.Vertices) - 1
	}

	type entry struct {
		face  []int
		color int
	}
	entries := make([]entry, len(m.Faces))
	for i, face := range m.Faces {
		mapped := make([]int, len(face))
		for j, idx := range face {
			mapped[j] = remap[idx]
		}
		entries[i] = entry{face: rotateToMin(mapped), color: m.ColorIndex(i)}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if lessFace(entries[a].face, entries[b].face) {
			return true
		}
		if lessFace(entries[b].face, entries[a].face) {
			return false
		}
		return entries[a].color < entries[b].color
	})

	out.Faces = make([][]int, len(entries))
	if len(m.ColorIndices) > 0 {
		out.ColorIndices = make([]int, len(entries))
	}
	for i, e := range entries {
		out.Faces[i] = e.face
		if out.ColorIndices != nil {
			out.ColorIndices[i] = e.color
		}
	}

	return out
}

// BoundingBox returns the axis-aligned bounds of the mesh vertices
func (m *PolyhedralMesh) BoundingBox() (*BoundingBox, error) {
	return CalculateBoundingBox(m.Vertices)
}

func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func lessFace(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func rotateToMin(face []int) []int {
	if len(face) == 0 {
		return face
	}
	minPos := 0
	for i, idx := range face {
		if idx < face[minPos] {
			minPos = i
		}
	}
	out := make([]int, 0, len(face))
	out = append(out, face[minPos:]...)
	return append(out, face[:minPos]...)
}

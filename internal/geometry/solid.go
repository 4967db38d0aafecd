package geometry

import "fmt"

var _ Solid = (*MeshSolid)(nil)

// MeshSolid is a solid whose boundary is given as a polygon mesh
type MeshSolid struct {
	Mesh *PolyhedralMesh
}

// NewMeshSolid creates a solid from its boundary mesh
func NewMeshSolid(mesh *PolyhedralMesh) *MeshSolid {
	return &MeshSolid{Mesh: mesh}
}

// IsEmpty returns true if the solid has no boundary faces
func (s *MeshSolid) IsEmpty() bool {
	return s.Mesh == nil || s.Mesh.IsEmpty()
}

// IsSimple reports whether the boundary is a closed, consistently oriented
// 2-manifold: every directed edge is used exactly once and its reverse is
// used exactly once.
func (s *MeshSolid) IsSimple() bool {
	if s.IsEmpty() {
		return false
	}

	type edge struct{ from, to int }
	edges := make(map[edge]int)
	for _, face := range s.Mesh.Faces {
		if len(face) < 3 {
			return false
		}
		for i := range face {
			e := edge{face[i], face[(i+1)%len(face)]}
			if e.from == e.to {
				return false
			}
			edges[e]++
		}
	}

	for e, n := range edges {
		if n != 1 || edges[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}

// ToPolyhedralMesh returns a triangulated copy of the boundary
func (s *MeshSolid) ToPolyhedralMesh() (*PolyhedralMesh, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("solid is empty")
	}
	if err := s.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("invalid boundary mesh: %w", err)
	}
	return s.Mesh.Clone().Triangulated(), nil
}

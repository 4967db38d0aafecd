package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Kind identifies the variant of a Geometry node
type Kind int

const (
	KindCompositeList Kind = iota
	KindBooleanSolid
	KindPolyhedralMesh
	KindPlanarPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCompositeList:
		return "composite list"
	case KindBooleanSolid:
		return "boolean solid"
	case KindPolyhedralMesh:
		return "polyhedral mesh"
	case KindPlanarPolygon:
		return "planar polygon"
	default:
		return "unknown"
	}
}

// Geometry is a node of the geometry tree. The set of variants is closed:
// only the types in this package implement it.
type Geometry interface {
	Kind() Kind
	geometry()
}

// Child is a named entry of a CompositeList
type Child struct {
	Name     string
	Geometry Geometry
}

// CompositeList groups child geometries in a defined order
type CompositeList struct {
	Children []Child
}

func (*CompositeList) Kind() Kind { return KindCompositeList }
func (*CompositeList) geometry()  {}

// Add appends a named child
func (l *CompositeList) Add(name string, g Geometry) {
	l.Children = append(l.Children, Child{Name: name, Geometry: g})
}

// Solid is the geometry kernel contract for the result of boolean operations
// over volumes.
type Solid interface {
	IsEmpty() bool
	// IsSimple reports whether the boundary is a closed 2-manifold.
	IsSimple() bool
	ToPolyhedralMesh() (*PolyhedralMesh, error)
}

// BooleanSolid wraps a kernel solid. A nil Solid is empty.
type BooleanSolid struct {
	Solid Solid
}

func (*BooleanSolid) Kind() Kind { return KindBooleanSolid }
func (*BooleanSolid) geometry()  {}

// IsEmpty reports whether there is no solid to export
func (b *BooleanSolid) IsEmpty() bool {
	return b.Solid == nil || b.Solid.IsEmpty()
}

func (*PolyhedralMesh) Kind() Kind { return KindPolyhedralMesh }
func (*PolyhedralMesh) geometry()  {}

// PlanarPolygon is 2D geometry made of closed outlines
type PlanarPolygon struct {
	Outlines [][]r2.Vec
}

func (*PlanarPolygon) Kind() Kind { return KindPlanarPolygon }
func (*PlanarPolygon) geometry()  {}

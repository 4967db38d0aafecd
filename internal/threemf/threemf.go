// Package threemf implements an in-memory 3MF document with writers for the
// 3MF package and the bare model XML.
package threemf

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/models"
)

// Unit is the model unit of a 3MF document
type Unit int

const (
	UnitMicroMeter Unit = iota
	UnitMilliMeter
	UnitCentiMeter
	UnitInch
	UnitFoot
	UnitMeter
)

func (u Unit) String() string {
	switch u {
	case UnitMicroMeter:
		return "micron"
	case UnitMilliMeter:
		return "millimeter"
	case UnitCentiMeter:
		return "centimeter"
	case UnitInch:
		return "inch"
	case UnitFoot:
		return "foot"
	case UnitMeter:
		return "meter"
	default:
		return "unknown"
	}
}

// ColorRGBA is an 8 bit per channel color
type ColorRGBA struct {
	R, G, B, A uint8
}

// TriangleProperties assigns a property of a group to the three corners of a triangle
type TriangleProperties struct {
	ResourceID  uint32
	PropertyIDs [3]uint32
}

// WriteFunc receives consecutive chunks of serialized output
type WriteFunc func(data []byte) error

// SeekFunc moves the output position to an absolute offset
type SeekFunc func(pos uint64) error

// Wrapper is the library entry point
type Wrapper interface {
	GetLibraryVersion() (major, minor, micro uint32, err error)
	CreateModel() (Model, error)
}

// Model is a 3MF document under construction
type Model interface {
	SetUnit(unit Unit) error
	Unit() Unit
	AddMeshObject() (MeshObject, error)
	MeshObjectCount() int
	AddBaseMaterialGroup() (BaseMaterialGroup, error)
	AddColorGroup() (ColorGroup, error)
	GetMetaDataGroup() (MetaDataGroup, error)
	AddBuildItem(object MeshObject, transform geometry.Transform) (BuildItem, error)
	QueryWriter(format string) (Writer, error)
	Document() *models.Model
}

// Resource is anything that owns a unique resource ID in a model
type Resource interface {
	ResourceID() uint32
}

// MeshObject is a triangle mesh resource
type MeshObject interface {
	Resource
	SetName(name string) error
	Name() string
	AddVertex(position r3.Vec) (uint32, error)
	AddTriangle(v1, v2, v3 uint32) (uint32, error)
	VertexCount() uint32
	TriangleCount() uint32
	SetTriangleProperties(index uint32, props TriangleProperties) error
	TriangleProperties(index uint32) (TriangleProperties, error)
	SetObjectLevelProperty(resourceID, propertyID uint32) error
}

// BaseMaterialGroup is a group of named materials with a display color
type BaseMaterialGroup interface {
	Resource
	AddMaterial(name string, color ColorRGBA) (uint32, error)
	Count() uint32
}

// ColorGroup is a group of plain colors
type ColorGroup interface {
	Resource
	AddColor(color ColorRGBA) (uint32, error)
	Count() uint32
}

// MetaDataGroup holds the model level metadata entries
type MetaDataGroup interface {
	AddMetaData(namespace, name, value, valueType string, mustPreserve bool) error
	Count() uint32
}

// BuildItem places an object on the build platform
type BuildItem interface {
	ObjectResourceID() uint32
	SetPartNumber(partNumber string) error
	PartNumber() string
}

// Writer serializes a model
type Writer interface {
	SetDecimalPrecision(precision uint32) error
	DecimalPrecision() uint32
	WriteToCallback(write WriteFunc, seek SeekFunc) error
}

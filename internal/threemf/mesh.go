package threemf

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/philipparndt/go3mfexport/internal/models"
)

type triangle struct {
	v     [3]uint32
	props TriangleProperties
}

type meshObject struct {
	model     *model
	id        uint32
	name      string
	vertices  []r3.Vec
	triangles []triangle

	// object level property, zero resource ID if unset
	propResource uint32
	propID       uint32
}

func (o *meshObject) ResourceID() uint32 {
	return o.id
}

func (o *meshObject) SetName(name string) error {
	o.name = name
	return nil
}

func (o *meshObject) Name() string {
	return o.name
}

func (o *meshObject) AddVertex(position r3.Vec) (uint32, error) {
	for _, c := range []float64{position.X, position.Y, position.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return 0, newError(ErrorCodeInvalidParam, "vertex coordinate is not finite: %v", position)
		}
	}
	o.vertices = append(o.vertices, position)
	return uint32(len(o.vertices) - 1), nil
}

func (o *meshObject) AddTriangle(v1, v2, v3 uint32) (uint32, error) {
	count := uint32(len(o.vertices))
	for _, v := range []uint32{v1, v2, v3} {
		if v >= count {
			return 0, newError(ErrorCodeInvalidParam, "triangle vertex index %d out of range (%d vertices)", v, count)
		}
	}
	if v1 == v2 || v2 == v3 || v1 == v3 {
		return 0, newError(ErrorCodeInvalidParam, "degenerate triangle (%d, %d, %d)", v1, v2, v3)
	}
	o.triangles = append(o.triangles, triangle{v: [3]uint32{v1, v2, v3}})
	return uint32(len(o.triangles) - 1), nil
}

func (o *meshObject) VertexCount() uint32 {
	return uint32(len(o.vertices))
}

func (o *meshObject) TriangleCount() uint32 {
	return uint32(len(o.triangles))
}

func (o *meshObject) SetTriangleProperties(index uint32, props TriangleProperties) error {
	if index >= uint32(len(o.triangles)) {
		return newError(ErrorCodeInvalidParam, "triangle index %d out of range", index)
	}
	if err := o.checkProperty(props.ResourceID, props.PropertyIDs[:]...); err != nil {
		return err
	}
	o.triangles[index].props = props
	return nil
}

func (o *meshObject) TriangleProperties(index uint32) (TriangleProperties, error) {
	if index >= uint32(len(o.triangles)) {
		return TriangleProperties{}, newError(ErrorCodeInvalidParam, "triangle index %d out of range", index)
	}
	return o.triangles[index].props, nil
}

func (o *meshObject) SetObjectLevelProperty(resourceID, propertyID uint32) error {
	if err := o.checkProperty(resourceID, propertyID); err != nil {
		return err
	}
	o.propResource = resourceID
	o.propID = propertyID
	return nil
}

func (o *meshObject) checkProperty(resourceID uint32, propertyIDs ...uint32) error {
	count, ok := o.model.propertyCount(resourceID)
	if !ok {
		return newError(ErrorCodeResourceNotFound, "property resource %d not found", resourceID)
	}
	for _, id := range propertyIDs {
		if id == 0 || id > count {
			return newError(ErrorCodeInvalidParam, "property %d out of range for resource %d", id, resourceID)
		}
	}
	return nil
}

func (o *meshObject) document(precision uint32) models.Object {
	obj := models.Object{
		ID:   strconv.FormatUint(uint64(o.id), 10),
		Type: "model",
		Name: o.name,
		Mesh: &models.Mesh{},
	}
	if o.propResource != 0 {
		obj.PID = strconv.FormatUint(uint64(o.propResource), 10)
		obj.PIndex = strconv.FormatUint(uint64(o.propID-1), 10)
	}

	vertices := make([]models.Vertex, len(o.vertices))
	for i, v := range o.vertices {
		vertices[i] = models.Vertex{
			X: formatCoordinate(v.X, precision),
			Y: formatCoordinate(v.Y, precision),
			Z: formatCoordinate(v.Z, precision),
		}
	}
	obj.Mesh.Vertices.Vertex = vertices

	triangles := make([]models.Triangle, len(o.triangles))
	for i, t := range o.triangles {
		tri := models.Triangle{V1: int(t.v[0]), V2: int(t.v[1]), V3: int(t.v[2])}
		if t.props.ResourceID != 0 {
			p := t.props.PropertyIDs
			tri.PID = strconv.FormatUint(uint64(t.props.ResourceID), 10)
			tri.P1 = strconv.FormatUint(uint64(p[0]-1), 10)
			if p[1] != p[0] || p[2] != p[0] {
				tri.P2 = strconv.FormatUint(uint64(p[1]-1), 10)
				tri.P3 = strconv.FormatUint(uint64(p[2]-1), 10)
			}
		}
		triangles[i] = tri
	}
	obj.Mesh.Triangles.Triangle = triangles

	return obj
}

// formatCoordinate formats v with the given number of decimals and trims
// trailing zeros
func formatCoordinate(v float64, precision uint32) string {
	s := strconv.FormatFloat(v, 'f', int(precision), 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox represents a 3D bounding box
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Width returns the width (X dimension) of the bounding box
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height (Y dimension) of the bounding box
func (b *BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Depth returns the depth (Z dimension) of the bounding box
func (b *BoundingBox) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// Extend grows the box to include v
func (b *BoundingBox) Extend(v r3.Vec) {
	b.MinX = math.Min(b.MinX, v.X)
	b.MinY = math.Min(b.MinY, v.Y)
	b.MinZ = math.Min(b.MinZ, v.Z)
	b.MaxX = math.Max(b.MaxX, v.X)
	b.MaxY = math.Max(b.MaxY, v.Y)
	b.MaxZ = math.Max(b.MaxZ, v.Z)
}

// CalculateBoundingBox calculates the bounding box of a vertex list
func CalculateBoundingBox(vertices []r3.Vec) (*BoundingBox, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}

	// Initialize with first vertex
	first := vertices[0]
	bbox := &BoundingBox{
		MinX: first.X,
		MinY: first.Y,
		MinZ: first.Z,
		MaxX: first.X,
		MaxY: first.Y,
		MaxZ: first.Z,
	}

	for _, v := range vertices[1:] {
		bbox.Extend(v)
	}

	return bbox, nil
}

// CalculateCombinedBoundingBox calculates the bounding box for multiple meshes
// taking into account the translation of their transforms
func CalculateCombinedBoundingBox(meshes []*PolyhedralMesh, transforms []Transform) (*BoundingBox, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("no meshes provided")
	}

	if len(transforms) != len(meshes) {
		return nil, fmt.Errorf("number of transforms must match number of meshes")
	}

	var combined *BoundingBox

	for i, mesh := range meshes {
		bbox, err := mesh.BoundingBox()
		if err != nil {
			continue // Skip meshes without vertices
		}

		dx, dy, dz := transforms[i].Offset()
		shifted := &BoundingBox{
			MinX: bbox.MinX + dx,
			MinY: bbox.MinY + dy,
			MinZ: bbox.MinZ + dz,
			MaxX: bbox.MaxX + dx,
			MaxY: bbox.MaxY + dy,
			MaxZ: bbox.MaxZ + dz,
		}

		if combined == nil {
			combined = shifted
		} else {
			combined.Extend(r3.Vec{X: shifted.MinX, Y: shifted.MinY, Z: shifted.MinZ})
			combined.Extend(r3.Vec{X: shifted.MaxX, Y: shifted.MaxY, Z: shifted.MaxZ})
		}
	}

	if combined == nil {
		return nil, fmt.Errorf("no valid meshes found")
	}

	return combined, nil
}

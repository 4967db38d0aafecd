package export

import (
	"fmt"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/logger"
	"github.com/philipparndt/go3mfexport/internal/threemf"
)

// exportContext is the state shared by all objects of one export
type exportContext struct {
	model threemf.Model
	// at most one of materials and colors is set
	materials threemf.BaseMaterialGroup
	colors    threemf.ColorGroup
	// number of siblings in the innermost composite list, 1 for a single object
	modelCount int
	table      *colorTable
	info       Info
	opts       *Options
	log        logger.Sink
}

// appendMesh adds a triangulated mesh as a new mesh object with a build item
func (ctx *exportContext) appendMesh(mesh *geometry.PolyhedralMesh) error {
	obj, err := ctx.model.AddMeshObject()
	if err != nil {
		return libraryFailure(ctx.log, err)
	}

	name, partNumber := ModelName, ""
	if ctx.modelCount != 1 {
		name = fmt.Sprintf("Part %d", ctx.model.MeshObjectCount())
		partNumber = name
	}
	if err := obj.SetName(name); err != nil {
		return libraryFailure(ctx.log, err)
	}
	if id := ctx.groupID(); id != 0 {
		if err := obj.SetObjectLevelProperty(id, 1); err != nil {
			return libraryFailure(ctx.log, err)
		}
	}

	// Sorting needs valid indices. Invalid meshes are left for the library to reject.
	if ctx.opts.PredictableOutput && mesh.Validate() == nil {
		mesh = mesh.Sorted()
	}

	for _, v := range mesh.Vertices {
		if _, err := obj.AddVertex(v); err != nil {
			ctx.log.Message(logger.GroupExportError, err.Error())
			return failure(ctx.log, "Can't add vertex to 3MF model.", err)
		}
	}

	for i, face := range mesh.Faces {
		if err := ctx.appendTriangle(obj, mesh, i, face); err != nil {
			ctx.log.Message(logger.GroupExportError, err.Error())
			return failure(ctx.log, "Can't add triangle to 3MF model.", err)
		}
	}

	item, err := ctx.model.AddBuildItem(obj, geometry.Identity())
	if err != nil {
		ctx.log.Message(logger.GroupExportError, err.Error())
		return nil
	}
	if partNumber != "" {
		if err := item.SetPartNumber(partNumber); err != nil {
			ctx.log.Message(logger.GroupExportError, err.Error())
		}
	}
	return nil
}

func (ctx *exportContext) appendTriangle(obj threemf.MeshObject, mesh *geometry.PolyhedralMesh, i int, face []int) error {
	if len(face) != 3 {
		return fmt.Errorf("face %d has %d vertices, expected a triangle", i, len(face))
	}
	var v [3]uint32
	for j, idx := range face {
		if idx < 0 || idx >= len(mesh.Vertices) {
			return fmt.Errorf("face %d: vertex index %d out of range (%d vertices)", i, idx, len(mesh.Vertices))
		}
		v[j] = uint32(idx)
	}
	index, err := obj.AddTriangle(v[0], v[1], v[2])
	if err != nil {
		return err
	}
	return ctx.colorTriangle(obj, mesh, index, mesh.ColorIndex(i))
}

// colorTriangle assigns the face color to all corners of a triangle
func (ctx *exportContext) colorTriangle(obj threemf.MeshObject, mesh *geometry.PolyhedralMesh, triangle uint32, colorIndex int) error {
	if colorIndex < 0 || len(mesh.Colors) == 0 {
		return nil
	}
	groupID := ctx.groupID()
	if groupID == 0 || ctx.opts.ColorMode == ColorModeSelectedOnly {
		return nil
	}
	if colorIndex >= len(mesh.Colors) {
		return fmt.Errorf("color index %d out of range (%d colors)", colorIndex, len(mesh.Colors))
	}

	id, err := ctx.table.resolve(ctx, mesh.Colors[colorIndex])
	if err != nil {
		return err
	}
	return obj.SetTriangleProperties(triangle, threemf.TriangleProperties{
		ResourceID:  groupID,
		PropertyIDs: [3]uint32{id, id, id},
	})
}

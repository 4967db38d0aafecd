package export

import (
	"fmt"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/logger"
)

// append exports geom and all of its children. The first failing object
// stops the traversal.
func (ctx *exportContext) append(geom geometry.Geometry) error {
	switch g := geom.(type) {
	case *geometry.CompositeList:
		ctx.modelCount = len(g.Children)
		for _, child := range g.Children {
			if err := ctx.append(child.Geometry); err != nil {
				return err
			}
		}
		return nil
	case *geometry.BooleanSolid:
		return ctx.appendSolid(g)
	case *geometry.PolyhedralMesh:
		return ctx.appendMesh(g.Triangulated())
	case *geometry.PlanarPolygon:
		panic("3MF export does not support 2D geometry")
	default:
		panic(fmt.Sprintf("3MF export not implemented for %T", geom))
	}
}

func (ctx *exportContext) appendSolid(solid *geometry.BooleanSolid) error {
	if solid.IsEmpty() {
		return failure(ctx.log, "Export failed, empty geometry.", nil)
	}

	if !solid.Solid.IsSimple() {
		ctx.log.Message(logger.GroupExportWarning, "Exported object may not be a valid 2-manifold and may need repair")
	}

	mesh, err := solid.Solid.ToPolyhedralMesh()
	if err != nil || mesh == nil {
		return failure(ctx.log, "Error converting solid geometry.", err)
	}
	return ctx.appendMesh(mesh.Triangulated())
}

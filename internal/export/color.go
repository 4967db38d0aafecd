package export

import (
	"fmt"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/threemf"
)

// colorChannel converts channel idx of c to 8 bit, clamping out of range values
func colorChannel(c geometry.Color, idx int) uint8 {
	v := int(255 * c[idx])
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func toRGBA(c geometry.Color) threemf.ColorRGBA {
	return threemf.ColorRGBA{
		R: colorChannel(c, 0),
		G: colorChannel(c, 1),
		B: colorChannel(c, 2),
		A: colorChannel(c, 3),
	}
}

// colorTable maps each color used by the export to its property ID in the
// active group
type colorTable struct {
	handles map[geometry.Color]uint32
}

func newColorTable() *colorTable {
	return &colorTable{handles: make(map[geometry.Color]uint32)}
}

func (t *colorTable) resolve(ctx *exportContext, color geometry.Color) (uint32, error) {
	if id, ok := t.handles[color]; ok {
		return id, nil
	}

	var (
		id  uint32
		err error
	)
	switch {
	case ctx.materials != nil:
		name := fmt.Sprintf("Color %d", ctx.materials.Count())
		id, err = ctx.materials.AddMaterial(name, toRGBA(color))
	case ctx.colors != nil:
		id, err = ctx.colors.AddColor(toRGBA(color))
	default:
		return 0, fmt.Errorf("no color group active")
	}
	if err != nil {
		return 0, err
	}

	t.handles[color] = id
	return id, nil
}

// groupID returns the resource ID of the active group, or 0 if none is active
func (ctx *exportContext) groupID() uint32 {
	switch {
	case ctx.materials != nil:
		return ctx.materials.ResourceID()
	case ctx.colors != nil:
		return ctx.colors.ResourceID()
	default:
		return 0
	}
}

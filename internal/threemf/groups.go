package threemf

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/go3mfexport/internal/models"
)

type baseMaterial struct {
	name  string
	color ColorRGBA
}

type baseMaterialGroup struct {
	id        uint32
	materials []baseMaterial
}

func (g *baseMaterialGroup) ResourceID() uint32 {
	return g.id
}

func (g *baseMaterialGroup) AddMaterial(name string, color ColorRGBA) (uint32, error) {
	if name == "" {
		return 0, newError(ErrorCodeInvalidParam, "base material needs a name")
	}
	g.materials = append(g.materials, baseMaterial{name: name, color: color})
	return uint32(len(g.materials)), nil
}

func (g *baseMaterialGroup) Count() uint32 {
	return uint32(len(g.materials))
}

func (g *baseMaterialGroup) document() models.BaseMaterials {
	doc := models.BaseMaterials{ID: strconv.FormatUint(uint64(g.id), 10)}
	for _, m := range g.materials {
		doc.Bases = append(doc.Bases, models.Base{Name: m.name, DisplayColor: m.color.Hex()})
	}
	return doc
}

type colorGroup struct {
	id     uint32
	colors []ColorRGBA
}

func (g *colorGroup) ResourceID() uint32 {
	return g.id
}

func (g *colorGroup) AddColor(color ColorRGBA) (uint32, error) {
	g.colors = append(g.colors, color)
	return uint32(len(g.colors)), nil
}

func (g *colorGroup) Count() uint32 {
	return uint32(len(g.colors))
}

func (g *colorGroup) document() models.ColorGroup {
	doc := models.ColorGroup{ID: strconv.FormatUint(uint64(g.id), 10)}
	for _, c := range g.colors {
		doc.Colors = append(doc.Colors, models.Color{Color: c.Hex()})
	}
	return doc
}

// Hex formats the color as #RRGGBBAA
func (c ColorRGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

package threemf

import (
	"strconv"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/models"
)

type model struct {
	unit      Unit
	nextID    uint32
	objects   []*meshObject
	materials []*baseMaterialGroup
	colors    []*colorGroup
	metadata  *metaDataGroup
	items     []*buildItem
}

func newModel() *model {
	return &model{
		unit:     UnitMilliMeter,
		nextID:   1,
		metadata: &metaDataGroup{},
	}
}

func (m *model) allocateID() uint32 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *model) SetUnit(unit Unit) error {
	if unit < UnitMicroMeter || unit > UnitMeter {
		return newError(ErrorCodeInvalidParam, "invalid model unit %d", int(unit))
	}
	m.unit = unit
	return nil
}

func (m *model) Unit() Unit {
	return m.unit
}

func (m *model) AddMeshObject() (MeshObject, error) {
	obj := &meshObject{model: m, id: m.allocateID()}
	m.objects = append(m.objects, obj)
	return obj, nil
}

func (m *model) MeshObjectCount() int {
	return len(m.objects)
}

func (m *model) AddBaseMaterialGroup() (BaseMaterialGroup, error) {
	group := &baseMaterialGroup{id: m.allocateID()}
	m.materials = append(m.materials, group)
	return group, nil
}

func (m *model) AddColorGroup() (ColorGroup, error) {
	group := &colorGroup{id: m.allocateID()}
	m.colors = append(m.colors, group)
	return group, nil
}

func (m *model) GetMetaDataGroup() (MetaDataGroup, error) {
	return m.metadata, nil
}

func (m *model) AddBuildItem(object MeshObject, transform geometry.Transform) (BuildItem, error) {
	if object == nil {
		return nil, newError(ErrorCodeInvalidParam, "build item needs an object")
	}
	if m.objectByID(object.ResourceID()) == nil {
		return nil, newError(ErrorCodeResourceNotFound, "object %d does not belong to this model", object.ResourceID())
	}
	item := &buildItem{objectID: object.ResourceID(), transform: transform}
	m.items = append(m.items, item)
	return item, nil
}

func (m *model) QueryWriter(format string) (Writer, error) {
	switch format {
	case "3mf":
		return &writer{model: m, precision: defaultPrecision, packaged: true}, nil
	case "model":
		return &writer{model: m, precision: defaultPrecision}, nil
	default:
		return nil, newError(ErrorCodeWriterClassUnknown, "unknown writer class %q", format)
	}
}

func (m *model) objectByID(id uint32) *meshObject {
	for _, obj := range m.objects {
		if obj.id == id {
			return obj
		}
	}
	return nil
}

// propertyCount returns the number of properties of the group with the given
// resource ID, or false if no such group exists
func (m *model) propertyCount(id uint32) (uint32, bool) {
	for _, g := range m.materials {
		if g.id == id {
			return g.Count(), true
		}
	}
	for _, g := range m.colors {
		if g.id == id {
			return g.Count(), true
		}
	}
	return 0, false
}

// Document builds the serializable form of the model
func (m *model) Document() *models.Model {
	return m.document(defaultPrecision)
}

func (m *model) document(precision uint32) *models.Model {
	doc := &models.Model{
		Unit:  m.unit.String(),
		Lang:  "en-US",
		Xmlns: models.CoreNamespace,
	}
	if len(m.colors) > 0 {
		doc.XmlnsM = models.MaterialNamespace
	}

	for _, e := range m.metadata.entries {
		md := models.Metadata{
			Name:  e.qualifiedName(),
			Type:  e.valueType,
			Value: e.value,
		}
		if e.preserve {
			md.Preserve = "1"
		}
		doc.Metadata = append(doc.Metadata, md)
	}

	for _, g := range m.materials {
		doc.Resources.BaseMaterials = append(doc.Resources.BaseMaterials, g.document())
	}
	for _, g := range m.colors {
		doc.Resources.ColorGroups = append(doc.Resources.ColorGroups, g.document())
	}
	for _, obj := range m.objects {
		doc.Resources.Objects = append(doc.Resources.Objects, obj.document(precision))
	}

	for _, item := range m.items {
		xmlItem := models.Item{
			ObjectID:   strconv.FormatUint(uint64(item.objectID), 10),
			PartNumber: item.partNumber,
		}
		if !item.transform.IsIdentity() {
			xmlItem.Transform = item.transform.String()
		}
		doc.Build.Items = append(doc.Build.Items, xmlItem)
	}

	return doc
}

type buildItem struct {
	objectID   uint32
	transform  geometry.Transform
	partNumber string
}

func (b *buildItem) ObjectResourceID() uint32 {
	return b.objectID
}

func (b *buildItem) SetPartNumber(partNumber string) error {
	b.partNumber = partNumber
	return nil
}

func (b *buildItem) PartNumber() string {
	return b.partNumber
}

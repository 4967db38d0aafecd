package threemf

type metaData struct {
	namespace string
	name      string
	value     string
	valueType string
	preserve  bool
}

func (m metaData) qualifiedName() string {
	if m.namespace == "" {
		return m.name
	}
	return m.namespace + ":" + m.name
}

type metaDataGroup struct {
	entries []metaData
}

func (g *metaDataGroup) AddMetaData(namespace, name, value, valueType string, mustPreserve bool) error {
	if name == "" {
		return newError(ErrorCodeInvalidParam, "metadata needs a name")
	}
	entry := metaData{
		namespace: namespace,
		name:      name,
		value:     value,
		valueType: valueType,
		preserve:  mustPreserve,
	}
	for _, e := range g.entries {
		if e.qualifiedName() == entry.qualifiedName() {
			return newError(ErrorCodeDuplicateMetaData, "duplicate metadata %q", entry.qualifiedName())
		}
	}
	g.entries = append(g.entries, entry)
	return nil
}

func (g *metaDataGroup) Count() uint32 {
	return uint32(len(g.entries))
}

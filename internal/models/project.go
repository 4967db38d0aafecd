package models

// Project represents an export project file
type Project struct {
	Output       string          `yaml:"output"`
	Title        string          `yaml:"title,omitempty"`
	DefaultColor string          `yaml:"default_color,omitempty"`
	Export       *ExportSettings `yaml:"export,omitempty"`
	Objects      []ProjectObject `yaml:"objects"`
}

// ExportSettings holds optional overrides of the 3MF export options.
// Unset fields keep their defaults.
type ExportSettings struct {
	Unit              string  `yaml:"unit,omitempty"`
	ColorMode         string  `yaml:"color_mode,omitempty"`
	MaterialType      string  `yaml:"material_type,omitempty"`
	Color             string  `yaml:"color,omitempty"`
	DecimalPrecision  *uint32 `yaml:"decimal_precision,omitempty"`
	AddMetaData       *bool   `yaml:"add_metadata,omitempty"`
	PredictableOutput *bool   `yaml:"predictable_output,omitempty"`
	Designer          string  `yaml:"designer,omitempty"`
	Description       string  `yaml:"description,omitempty"`
	Copyright         string  `yaml:"copyright,omitempty"`
	LicenseTerms      string  `yaml:"license_terms,omitempty"`
	Rating            string  `yaml:"rating,omitempty"`
	MetaDataTitle     string  `yaml:"metadata_title,omitempty"`
}

// ProjectObject is a single exported object, either loaded from an STL
// file or given inline
type ProjectObject struct {
	Name  string       `yaml:"name"`
	File  string       `yaml:"file,omitempty"`
	Mesh  *ProjectMesh `yaml:"mesh,omitempty"`
	Solid bool         `yaml:"solid,omitempty"`
	Color string       `yaml:"color,omitempty"`
}

// ProjectMesh is an inline polygon mesh
type ProjectMesh struct {
	Vertices   [][3]float64 `yaml:"vertices"`
	Faces      [][]int      `yaml:"faces"`
	Colors     []string     `yaml:"colors,omitempty"`
	FaceColors []int        `yaml:"face_colors,omitempty"`
}

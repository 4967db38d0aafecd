package export

import (
	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/models"
)

// Color modes
const (
	ColorModeNone         = "none"
	ColorModeModel        = "model"
	ColorModeSelectedOnly = "selected-only"
)

// Material types
const (
	MaterialTypeMaterial = "material"
	MaterialTypeColor    = "color"
)

// DefaultColor is the selected color used when nothing else is configured
const DefaultColor = "#f9d72c"

// Options configures a 3MF export
type Options struct {
	Unit                 string `yaml:"unit"`
	ColorMode            string `yaml:"color_mode"`
	MaterialType         string `yaml:"material_type"`
	Color                string `yaml:"color"`
	DecimalPrecision     uint32 `yaml:"decimal_precision"`
	AddMetaData          bool   `yaml:"add_metadata"`
	MetaDataTitle        string `yaml:"metadata_title,omitempty"`
	MetaDataDesigner     string `yaml:"designer,omitempty"`
	MetaDataDescription  string `yaml:"description,omitempty"`
	MetaDataCopyright    string `yaml:"copyright,omitempty"`
	MetaDataLicenseTerms string `yaml:"license_terms,omitempty"`
	MetaDataRating       string `yaml:"rating,omitempty"`
	PredictableOutput    bool   `yaml:"predictable_output"`
}

// DefaultOptions returns the default export options
func DefaultOptions() *Options {
	return &Options{
		Unit:             "millimeter",
		ColorMode:        ColorModeModel,
		MaterialType:     MaterialTypeColor,
		Color:            DefaultColor,
		DecimalPrecision: 6,
		AddMetaData:      true,
	}
}

// Apply overrides the options with the values set in a project file
func (o *Options) Apply(s *models.ExportSettings) {
	if s == nil {
		return
	}
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&o.Unit, s.Unit)
	setString(&o.ColorMode, s.ColorMode)
	setString(&o.MaterialType, s.MaterialType)
	setString(&o.Color, s.Color)
	setString(&o.MetaDataTitle, s.MetaDataTitle)
	setString(&o.MetaDataDesigner, s.Designer)
	setString(&o.MetaDataDescription, s.Description)
	setString(&o.MetaDataCopyright, s.Copyright)
	setString(&o.MetaDataLicenseTerms, s.LicenseTerms)
	setString(&o.MetaDataRating, s.Rating)
	if s.DecimalPrecision != nil {
		o.DecimalPrecision = *s.DecimalPrecision
	}
	if s.AddMetaData != nil {
		o.AddMetaData = *s.AddMetaData
	}
	if s.PredictableOutput != nil {
		o.PredictableOutput = *s.PredictableOutput
	}
}

// Info carries the per call export input besides the geometry
type Info struct {
	Title        string
	DefaultColor geometry.Color
	Options      *Options
}

// Package pdfopts holds the PDF export options and the dialog that edits them.
package pdfopts

// PaperSize is a supported PDF paper size
type PaperSize int

const (
	PaperA4 PaperSize = iota
	PaperA3
	PaperLetter
	PaperLegal
	PaperTabloid
)

var paperSizeNames = []string{"A4", "A3", "Letter", "Legal", "Tabloid"}

// PaperSizes lists all paper sizes in display order
var PaperSizes = []PaperSize{PaperA4, PaperA3, PaperLetter, PaperLegal, PaperTabloid}

func (p PaperSize) String() string {
	if p < 0 || int(p) >= len(paperSizeNames) {
		return paperSizeNames[PaperA4]
	}
	return paperSizeNames[p]
}

// ParsePaperSize returns the paper size named s, or A4 if s is unknown
func ParsePaperSize(s string) PaperSize {
	for i, name := range paperSizeNames {
		if name == s {
			return PaperSize(i)
		}
	}
	return PaperA4
}

// Orientation is the page orientation
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	AutoOrientation
)

var orientationNames = []string{"Portrait", "Landscape", "Auto"}

// Orientations lists all orientations in display order
var Orientations = []Orientation{Portrait, Landscape, AutoOrientation}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return orientationNames[AutoOrientation]
	}
	return orientationNames[o]
}

// ParseOrientation returns the orientation named s, or Portrait if s is unknown
func ParseOrientation(s string) Orientation {
	for i, name := range orientationNames {
		if name == s {
			return Orientation(i)
		}
	}
	return Portrait
}

// GridSizes are the selectable grid sizes in millimeters
var GridSizes = []float64{2, 2.5, 4, 5, 10}

// SnapGridSize maps v to the nearest selectable grid size
func SnapGridSize(v float64) float64 {
	switch {
	case v < 2.24:
		return 2
	case v < 3.1:
		return 2.5
	case v < 4.4:
		return 4
	case v < 7.5:
		return 5
	default:
		return 10
	}
}

// Options configures the PDF export
type Options struct {
	PaperSize          PaperSize
	Orientation        Orientation
	ShowDesignFilename bool
	ShowScale          bool
	ShowScaleMsg       bool
	ShowGrid           bool
	GridSize           float64
}

// DefaultOptions returns the PDF export defaults
func DefaultOptions() *Options {
	return &Options{
		PaperSize:    PaperA4,
		Orientation:  Portrait,
		ShowScale:    true,
		ShowScaleMsg: true,
		GridSize:     10,
	}
}

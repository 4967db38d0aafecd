package pdfopts

import (
	"fmt"

	"github.com/philipparndt/go3mfexport/internal/settings"
)

// Settings keys
const (
	KeyPaperSize    = "exportPdfOpts/paperSize"
	KeyOrientation  = "exportPdfOpts/orientation"
	KeyShowDsgnFN   = "exportPdfOpts/showDsgnFN"
	KeyShowScale    = "exportPdfOpts/showScale"
	KeyShowScaleMsg = "exportPdfOpts/showScaleMsg"
	KeyShowGrid     = "exportPdfOpts/showGrid"
	KeyGridSize     = "exportPdfOpts/gridSize"
)

// Prompter lets the user edit the dialog values. It returns false if the
// user did not confirm.
type Prompter interface {
	Prompt(d *Dialog) (bool, error)
}

// Dialog binds the PDF options to the persisted settings
type Dialog struct {
	store settings.Store
	opts  *Options

	paperSize          PaperSize
	orientation        Orientation
	showDesignFilename bool
	showScale          bool
	showScaleMsg       bool
	showGrid           bool
	gridSize           float64
}

// NewDialog loads the persisted values, falling back to opts
func NewDialog(store settings.Store, opts *Options) *Dialog {
	if opts == nil {
		opts = DefaultOptions()
	}
	d := &Dialog{store: store, opts: opts}

	d.SetPaperSize(ParsePaperSize(settings.String(store, KeyPaperSize, opts.PaperSize.String())))
	d.SetOrientation(ParseOrientation(settings.String(store, KeyOrientation, opts.Orientation.String())))
	d.SetShowDesignFilename(settings.Bool(store, KeyShowDsgnFN, opts.ShowDesignFilename))
	d.SetShowScale(settings.Bool(store, KeyShowScale, opts.ShowScale))
	d.SetShowScaleMsg(settings.Bool(store, KeyShowScaleMsg, opts.ShowScaleMsg))
	d.SetShowGrid(settings.Bool(store, KeyShowGrid, opts.ShowGrid))
	d.SetGridSize(settings.Float(store, KeyGridSize, opts.GridSize))

	return d
}

// Exec runs the prompter. Only if the user confirms are the values copied to
// the options and written to the store.
func (d *Dialog) Exec(p Prompter) (bool, error) {
	accepted, err := p.Prompt(d)
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, nil
	}

	d.opts.PaperSize = d.PaperSize()
	d.opts.Orientation = d.Orientation()
	d.opts.ShowDesignFilename = d.ShowDesignFilename()
	d.opts.ShowScale = d.ShowScale()
	d.opts.ShowScaleMsg = d.ShowScaleMsg()
	d.opts.ShowGrid = d.ShowGrid()
	d.opts.GridSize = d.GridSize()

	d.store.SetValue(KeyPaperSize, d.PaperSize().String())
	d.store.SetValue(KeyOrientation, d.Orientation().String())
	d.store.SetValue(KeyShowDsgnFN, d.ShowDesignFilename())
	d.store.SetValue(KeyShowScale, d.ShowScale())
	d.store.SetValue(KeyShowScaleMsg, d.ShowScaleMsg())
	d.store.SetValue(KeyShowGrid, d.ShowGrid())
	d.store.SetValue(KeyGridSize, d.GridSize())

	if err := d.store.Sync(); err != nil {
		return true, fmt.Errorf("error saving PDF options: %w", err)
	}
	return true, nil
}

// Options returns the options the dialog writes to
func (d *Dialog) Options() *Options {
	return d.opts
}

func (d *Dialog) PaperSize() PaperSize {
	return d.paperSize
}

func (d *Dialog) SetPaperSize(p PaperSize) {
	if p < PaperA4 || p > PaperTabloid {
		p = PaperA4
	}
	d.paperSize = p
}

func (d *Dialog) Orientation() Orientation {
	return d.orientation
}

func (d *Dialog) SetOrientation(o Orientation) {
	if o < Portrait || o > AutoOrientation {
		o = AutoOrientation
	}
	d.orientation = o
}

func (d *Dialog) ShowDesignFilename() bool     { return d.showDesignFilename }
func (d *Dialog) SetShowDesignFilename(v bool) { d.showDesignFilename = v }
func (d *Dialog) ShowScale() bool              { return d.showScale }
func (d *Dialog) SetShowScale(v bool)          { d.showScale = v }
func (d *Dialog) ShowScaleMsg() bool           { return d.showScaleMsg }
func (d *Dialog) SetShowScaleMsg(v bool)       { d.showScaleMsg = v }
func (d *Dialog) ShowGrid() bool               { return d.showGrid }
func (d *Dialog) SetShowGrid(v bool)           { d.showGrid = v }

func (d *Dialog) GridSize() float64 {
	return d.gridSize
}

// SetGridSize snaps v to the nearest selectable grid size
func (d *Dialog) SetGridSize(v float64) {
	d.gridSize = SnapGridSize(v)
}

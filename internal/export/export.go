// Package export writes geometry trees to 3MF documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/logger"
	"github.com/philipparndt/go3mfexport/internal/threemf"
)

const (
	// Application is written to the Application metadata entry
	Application = "go3mfexport"
	// ModelName names the object of a single object export
	ModelName = "go3mfexport Model"
)

var (
	// ErrLibraryVersion is returned when the 3MF library has an incompatible major version
	ErrLibraryVersion = errors.New("incompatible 3MF library version")
	// ErrExportFailed is returned when the export aborted. The details are
	// reported to the log sink.
	ErrExportFailed = errors.New("3MF export failed")
)

var units = map[string]threemf.Unit{
	"micron":     threemf.UnitMicroMeter,
	"millimeter": threemf.UnitMilliMeter,
	"centimeter": threemf.UnitCentiMeter,
	"meter":      threemf.UnitMeter,
	"inch":       threemf.UnitInch,
	"foot":       threemf.UnitFoot,
}

// Writer classes
const (
	WriterPackage = "3mf"
	WriterModel   = "model"
)

// Exporter writes 3MF documents. The zero value uses the bundled library and
// the package writer, discards messages and stamps documents with the
// current time.
type Exporter struct {
	Library threemf.Wrapper
	Log     logger.Sink
	Now     func() time.Time
	// WriterClass selects the library writer, WriterModel writes the bare model part
	WriterClass string
}

// Export writes geom as 3MF to out using the bundled library
func Export(geom geometry.Geometry, out io.Writer, info Info, sink logger.Sink) error {
	exporter := &Exporter{Log: sink}
	return exporter.Export(geom, out, info)
}

// Export writes geom as 3MF to out. Failures that abort the export are
// returned. Problems during the final write are reported to the log sink only,
// since part of the output may already be written by then.
func (e *Exporter) Export(geom geometry.Geometry, out io.Writer, info Info) error {
	log := e.Log
	if log == nil {
		log = logger.Discard
	}
	opts := info.Options
	if opts == nil {
		opts = DefaultOptions()
	}

	lib := e.Library
	if lib == nil {
		var err error
		if lib, err = threemf.LoadLibrary(); err != nil {
			return libraryFailure(log, err)
		}
	}

	major, minor, micro, err := lib.GetLibraryVersion()
	if err != nil {
		return libraryFailure(log, err)
	}
	if major != threemf.VersionMajor {
		logger.Messagef(log, logger.GroupError, "Invalid 3MF library major version %d.%d.%d, expected %d.%d.%d",
			major, minor, micro, threemf.VersionMajor, threemf.VersionMinor, threemf.VersionMicro)
		return fmt.Errorf("%w: %d.%d.%d", ErrLibraryVersion, major, minor, micro)
	}

	model, err := lib.CreateModel()
	if err != nil {
		return libraryFailure(log, err)
	}
	if model == nil {
		return failure(log, "Can't create 3MF model.", nil)
	}

	if unit, ok := units[opts.Unit]; ok {
		if err := model.SetUnit(unit); err != nil {
			return libraryFailure(log, err)
		}
	}

	settingsColor, settingsColorOK := geometry.ParseHexColor(opts.Color)
	ctx := &exportContext{
		model:      model,
		modelCount: 1,
		table:      newColorTable(),
		info:       info,
		opts:       opts,
		log:        log,
	}

	if err := ctx.createColorGroup(settingsColor, settingsColorOK); err != nil {
		return err
	}

	if opts.AddMetaData {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		if err := addMetaData(model, opts, info.Title, now()); err != nil {
			return libraryFailure(log, err)
		}
	}

	if err := ctx.append(geom); err != nil {
		return err
	}

	writerClass := e.WriterClass
	if writerClass == "" {
		writerClass = WriterPackage
	}
	writer, err := model.QueryWriter(writerClass)
	if err != nil || writer == nil {
		return failure(log, "Can't get writer for 3MF model.", err)
	}

	if err := writer.SetDecimalPrecision(opts.DecimalPrecision); err != nil {
		logger.Messagef(log, logger.GroupExportError, "Error setting decimal precision for export: %s", err.Error())
	}

	stream := newStreamAdapter(out)
	if err := writer.WriteToCallback(stream.write, stream.seek); err != nil {
		log.Message(logger.GroupExportError, err.Error())
	}
	if err := stream.flush(); err != nil {
		logger.Messagef(log, logger.GroupExportError, "Error flushing 3MF output: %s", err.Error())
	}

	return nil
}

// createColorGroup registers the single global color in a material or color
// group as configured by the color mode and material type
func (ctx *exportContext) createColorGroup(settingsColor geometry.Color, settingsColorOK bool) error {
	if ctx.opts.ColorMode == ColorModeNone {
		return nil
	}

	color := ctx.info.DefaultColor
	if ctx.opts.ColorMode != ColorModeModel {
		if settingsColorOK {
			color = settingsColor
		} else {
			logger.Messagef(ctx.log, logger.GroupWarning,
				"Default color in settings is invalid ('%s'), using default from model.", ctx.opts.Color)
		}
	}

	switch ctx.opts.MaterialType {
	case MaterialTypeMaterial:
		group, err := ctx.model.AddBaseMaterialGroup()
		if err != nil {
			return libraryFailure(ctx.log, err)
		}
		rgba := toRGBA(color)
		rgba.A = 0xff
		if _, err := group.AddMaterial("Default", rgba); err != nil {
			return libraryFailure(ctx.log, err)
		}
		ctx.materials = group
	case MaterialTypeColor:
		group, err := ctx.model.AddColorGroup()
		if err != nil {
			return libraryFailure(ctx.log, err)
		}
		if _, err := group.AddColor(toRGBA(color)); err != nil {
			return libraryFailure(ctx.log, err)
		}
		ctx.colors = group
	}
	return nil
}

func addMetaData(model threemf.Model, opts *Options, title string, now time.Time) error {
	group, err := model.GetMetaDataGroup()
	if err != nil {
		return err
	}

	entries := []struct {
		name  string
		value string
	}{
		{"Title", firstNonEmpty(opts.MetaDataTitle, title)},
		{"Application", Application},
		{"CreationDate", now.UTC().Format(time.RFC3339)},
		{"Designer", opts.MetaDataDesigner},
		{"Description", opts.MetaDataDescription},
		{"Copyright", opts.MetaDataCopyright},
		{"LicenseTerms", opts.MetaDataLicenseTerms},
		{"Rating", opts.MetaDataRating},
	}
	for _, entry := range entries {
		if entry.value == "" {
			continue
		}
		if err := group.AddMetaData("", entry.name, entry.value, "xs:string", true); err != nil {
			return err
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// failure reports msg as an export error and returns it wrapped in ErrExportFailed
func failure(log logger.Sink, msg string, cause error) error {
	log.Message(logger.GroupExportError, msg)
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrExportFailed, msg, cause)
	}
	return fmt.Errorf("%w: %s", ErrExportFailed, msg)
}

// libraryFailure reports the message of a library error and returns it
// wrapped in ErrExportFailed
func libraryFailure(log logger.Sink, err error) error {
	log.Message(logger.GroupExportError, err.Error())
	return fmt.Errorf("%w: %v", ErrExportFailed, err)
}

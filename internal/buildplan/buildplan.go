package buildplan

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/philipparndt/go3mfexport/internal/config"
	"github.com/philipparndt/go3mfexport/internal/export"
	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/logger"
	"github.com/philipparndt/go3mfexport/internal/models"
	"github.com/philipparndt/go3mfexport/internal/preconditions"
	"github.com/philipparndt/go3mfexport/internal/ui"
)

// FileType represents the type of input file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeYAML
	FileTypeSTL
)

// Request holds the command line settings of an export
type Request struct {
	Inputs []string
	// Output overrides the project output, "-" writes to stdout
	Output string
	// Overrides are applied on top of the project export settings
	Overrides  models.ExportSettings
	Title      string
	PrintModel bool
	// Stdout receives the document when Output is "-" and otherwise the
	// printed model
	Stdout io.Writer
	// Stderr receives the printed model when the document goes to Stdout
	Stderr io.Writer
}

// BuildStep represents a single step in the build plan
type BuildStep interface {
	Name() string
	Execute(ctx *Context) error
}

// BuildPlan contains all steps needed to export the inputs
type BuildPlan struct {
	Steps   []BuildStep
	Context *Context
}

// Context holds shared data between build steps
type Context struct {
	Request  Request
	Project  *models.Project
	Info     export.Info
	Geometry geometry.Geometry
	Messages *logger.Counter
	Sink     logger.Sink
	Written  int64
}

// Planner creates build plans based on input files
type Planner struct {
	// Sink receives export messages in addition to the plan's own counter
	Sink logger.Sink
}

// NewPlanner creates a new build planner
func NewPlanner(sink logger.Sink) *Planner {
	return &Planner{Sink: sink}
}

// CreatePlan analyzes input files and creates an execution plan
func (p *Planner) CreatePlan(req Request) (*BuildPlan, error) {
	if len(req.Inputs) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	if req.Stdout == nil {
		req.Stdout = os.Stdout
	}
	if req.Stderr == nil {
		req.Stderr = os.Stderr
	}

	counter := logger.NewCounter()
	sink := logger.Sink(counter)
	if p.Sink != nil {
		sink = logger.Tee{p.Sink, counter}
	}

	plan := &BuildPlan{
		Context: &Context{Request: req, Messages: counter, Sink: sink},
	}

	if len(req.Inputs) == 1 && detectFileType(req.Inputs[0]) == FileTypeYAML {
		plan.Steps = append(plan.Steps, &LoadProjectStep{Path: req.Inputs[0]})
	} else {
		for _, input := range req.Inputs {
			switch detectFileType(input) {
			case FileTypeSTL:
			case FileTypeYAML:
				return nil, fmt.Errorf("a project file cannot be combined with other inputs: %s", input)
			default:
				return nil, fmt.Errorf("unknown file type: %s", input)
			}
		}
		plan.Steps = append(plan.Steps, &ValidateFilesStep{Files: req.Inputs}, &ParseSTLArgsStep{Files: req.Inputs})
	}

	plan.Steps = append(plan.Steps,
		&CheckPreconditionsStep{},
		&PrepareStep{},
		&ExportStep{},
	)
	if req.PrintModel {
		plan.Steps = append(plan.Steps, &PrintModelStep{})
	}
	plan.Steps = append(plan.Steps, &ReportStep{})

	return plan, nil
}

// Execute runs all steps in the plan
func (p *BuildPlan) Execute() error {
	if ui.IsVerbose() {
		ui.PrintTitle("Export plan")
	}

	for i, step := range p.Steps {
		if ui.IsVerbose() {
			ui.PrintStep(i+1, len(p.Steps), step.Name())
		}
		logger.Debug("Executing build step", zap.String("step", step.Name()))
		if err := step.Execute(p.Context); err != nil {
			return err
		}
	}

	return nil
}

// detectFileType determines the file type based on extension
func detectFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FileTypeYAML
	case ".stl":
		return FileTypeSTL
	default:
		return FileTypeUnknown
	}
}

// pluralize returns "s" if count != 1, empty string otherwise
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// LoadProjectStep loads and validates a YAML project
type LoadProjectStep struct {
	Path string
}

func (s *LoadProjectStep) Name() string {
	return "Load project"
}

func (s *LoadProjectStep) Execute(ctx *Context) error {
	project, err := config.NewLoader().Load(s.Path)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	ctx.Project = project
	ui.PrintSuccess(fmt.Sprintf("Loaded project with %d object%s", len(project.Objects), pluralize(len(project.Objects))))

	if ui.IsVerbose() {
		for _, obj := range project.Objects {
			source := "inline mesh"
			if obj.File != "" {
				source = filepath.Base(obj.File)
			}
			ui.PrintItem(fmt.Sprintf("%s: %s", obj.Name, source))
		}
	}
	return nil
}

// ValidateFilesStep validates that all STL inputs exist
type ValidateFilesStep struct {
	Files []string
}

func (s *ValidateFilesStep) Name() string {
	return "Validate files"
}

func (s *ValidateFilesStep) Execute(ctx *Context) error {
	if err := preconditions.ValidateFiles(s.Files); err != nil {
		return err
	}
	if ui.IsVerbose() {
		ui.PrintSuccess(fmt.Sprintf("Validated %d file%s", len(s.Files), pluralize(len(s.Files))))
	}
	return nil
}

// ParseSTLArgsStep creates a project from STL file arguments
type ParseSTLArgsStep struct {
	Files []string
}

func (s *ParseSTLArgsStep) Name() string {
	return "Parse STL arguments"
}

func (s *ParseSTLArgsStep) Execute(ctx *Context) error {
	output := ctx.Request.Output
	if output == "" {
		base := filepath.Base(s.Files[0])
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".3mf"
	}

	project, err := config.NewLoader().FromFiles(s.Files, output)
	if err != nil {
		return err
	}
	ctx.Project = project
	return nil
}

// CheckPreconditionsStep checks the 3MF library and the output path
type CheckPreconditionsStep struct{}

func (s *CheckPreconditionsStep) Name() string {
	return "Check preconditions"
}

func (s *CheckPreconditionsStep) Execute(ctx *Context) error {
	if ctx.Request.Output != "" {
		ctx.Project.Output = ctx.Request.Output
	}
	if err := preconditions.Check(); err != nil {
		return err
	}
	if err := preconditions.ValidateOutputPath(ctx.Project.Output); err != nil {
		return err
	}
	if ui.IsVerbose() {
		ui.PrintSuccess("3MF library is available")
	}
	return nil
}

// PrepareStep builds the geometry tree and the export options
type PrepareStep struct{}

func (s *PrepareStep) Name() string {
	return "Prepare geometry"
}

func (s *PrepareStep) Execute(ctx *Context) error {
	geom, err := config.NewLoader().BuildGeometry(ctx.Project)
	if err != nil {
		return err
	}
	ctx.Geometry = geom

	ctx.Info = config.ExportInfo(ctx.Project)
	ctx.Info.Options.Apply(&ctx.Request.Overrides)
	if ctx.Request.Title != "" {
		ctx.Info.Title = ctx.Request.Title
	}

	logger.Info("Prepared export",
		zap.String("title", ctx.Info.Title),
		zap.String("unit", ctx.Info.Options.Unit),
		zap.String("color_mode", ctx.Info.Options.ColorMode),
		zap.Int("objects", len(ctx.Project.Objects)))
	return nil
}

// ExportStep writes the 3MF document
type ExportStep struct{}

func (s *ExportStep) Name() string {
	return "Export 3MF"
}

func (s *ExportStep) Execute(ctx *Context) error {
	var target io.Writer
	var file *os.File
	if ctx.Project.Output == preconditions.Stdout {
		target = ctx.Request.Stdout
	} else {
		var err error
		file, err = os.Create(ctx.Project.Output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()
		target = file
	}

	counted := &countingWriter{w: bufio.NewWriter(target)}
	exporter := &export.Exporter{Log: ctx.Sink}
	if err := exporter.Export(ctx.Geometry, counted, ctx.Info); err != nil {
		return err
	}
	ctx.Written = counted.n

	if n := ctx.Messages.Errors(); n > 0 {
		return fmt.Errorf("export reported %d error%s", n, pluralize(n))
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("error closing output file: %w", err)
		}
	}
	return nil
}

// countingWriter counts written bytes and passes flushes on
type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *countingWriter) Flush() error {
	return c.w.Flush()
}

// PrintModelStep prints the model part of the document
type PrintModelStep struct{}

func (s *PrintModelStep) Name() string {
	return "Print model"
}

// Execute exports the model part again. Messages were already reported by
// the export step.
func (s *PrintModelStep) Execute(ctx *Context) error {
	var buf bytes.Buffer
	exporter := &export.Exporter{Log: logger.Discard, WriterClass: export.WriterModel}
	if err := exporter.Export(ctx.Geometry, &buf, ctx.Info); err != nil {
		return err
	}

	target := ctx.Request.Stdout
	if ctx.Project.Output == preconditions.Stdout {
		target = ctx.Request.Stderr
	}
	return ui.WriteXML(target, buf.String())
}

// ReportStep prints a summary of the exported parts
type ReportStep struct{}

func (s *ReportStep) Name() string {
	return "Report"
}

func (s *ReportStep) Execute(ctx *Context) error {
	ui.PrintSeparator()
	ui.PrintSuccess("Export completed successfully!")
	if ctx.Project.Output != preconditions.Stdout {
		relPath, err := filepath.Rel(".", ctx.Project.Output)
		if err != nil {
			relPath = ctx.Project.Output
		}
		ui.PrintKeyValue("Output file", relPath)
	}
	ui.PrintKeyValue("Size", humanize.Bytes(uint64(ctx.Written)))
	if n := ctx.Messages.Warnings(); n > 0 {
		ui.PrintWarning(fmt.Sprintf("%d warning%s", n, pluralize(n)))
	}

	parts := Summarize(ctx.Geometry, ctx.Project)
	if len(parts) == 0 {
		return nil
	}

	ui.PrintHeader("Parts")
	table := ui.NewTable("Name", "Vertices", "Triangles", "Size")
	for _, part := range parts {
		table.AddRow(part.Name,
			humanize.Comma(int64(part.Vertices)),
			humanize.Comma(int64(part.Triangles)),
			formatSize(part.Bounds))
	}
	table.Print()

	if len(parts) > 1 {
		if total, err := TotalBounds(parts); err == nil {
			ui.PrintKeyValue("Overall size", formatSize(total))
		}
	}
	return nil
}

func formatSize(b *geometry.BoundingBox) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%s x %s x %s", formatLength(b.Width()), formatLength(b.Height()), formatLength(b.Depth()))
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PartSummary describes one exported part
type PartSummary struct {
	Name      string
	Vertices  int
	Triangles int
	Bounds    *geometry.BoundingBox

	mesh *geometry.PolyhedralMesh
}

// TotalBounds returns the box around all parts. Build items are placed
// without an offset.
func TotalBounds(parts []PartSummary) (*geometry.BoundingBox, error) {
	meshes := make([]*geometry.PolyhedralMesh, len(parts))
	transforms := make([]geometry.Transform, len(parts))
	for i, part := range parts {
		meshes[i] = part.mesh
		transforms[i] = geometry.Identity()
	}
	return geometry.CalculateCombinedBoundingBox(meshes, transforms)
}

// Summarize lists the mesh statistics of the top level parts in export order
func Summarize(geom geometry.Geometry, project *models.Project) []PartSummary {
	var children []geometry.Child
	switch g := geom.(type) {
	case *geometry.CompositeList:
		children = g.Children
	case nil:
		return nil
	default:
		name := export.ModelName
		if project != nil && len(project.Objects) == 1 {
			name = project.Objects[0].Name
		}
		children = []geometry.Child{{Name: name, Geometry: g}}
	}

	var parts []PartSummary
	for _, child := range children {
		var mesh *geometry.PolyhedralMesh
		switch g := child.Geometry.(type) {
		case *geometry.PolyhedralMesh:
			mesh = g.Triangulated()
		case *geometry.BooleanSolid:
			if !g.IsEmpty() {
				mesh, _ = g.Solid.ToPolyhedralMesh()
			}
		}
		if mesh == nil {
			continue
		}

		part := PartSummary{Name: child.Name, Vertices: mesh.VertexCount(), Triangles: mesh.FaceCount(), mesh: mesh}
		if bounds, err := mesh.BoundingBox(); err == nil {
			part.Bounds = bounds
		}
		parts = append(parts, part)
	}
	return parts
}

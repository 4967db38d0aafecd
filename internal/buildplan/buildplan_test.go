package buildplan

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/logger"
	"github.com/philipparndt/go3mfexport/internal/models"
	"github.com/philipparndt/go3mfexport/internal/ui"
)

const triangleSTL = `solid tri
facet normal 0 0 1
 outer loop
  vertex 0 0 0
  vertex 4 0 0
  vertex 0 2 0
 endloop
endfacet
endsolid tri
`

func setup(t *testing.T) string {
	t.Helper()
	prev := ui.Output()
	ui.SetOutput(io.Discard)
	t.Cleanup(func() { ui.SetOutput(prev) })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.stl"), []byte(triangleSTL), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path     string
		expected FileType
	}{
		{"project.yaml", FileTypeYAML},
		{"project.YML", FileTypeYAML},
		{"part.stl", FileTypeSTL},
		{"part.STL", FileTypeSTL},
		{"part.scad", FileTypeUnknown},
		{"part", FileTypeUnknown},
	}

	for _, tt := range tests {
		if got := detectFileType(tt.path); got != tt.expected {
			t.Errorf("detectFileType(%s) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestCreatePlanErrors(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
	}{
		{"no inputs", nil},
		{"unknown type", []string{"part.obj"}},
		{"project with other inputs", []string{"a.stl", "project.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPlanner(nil).CreatePlan(Request{Inputs: tt.inputs}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestCreatePlanSteps(t *testing.T) {
	plan, err := NewPlanner(nil).CreatePlan(Request{Inputs: []string{"a.stl", "b.stl"}, PrintModel: true})
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, step := range plan.Steps {
		names = append(names, step.Name())
	}
	expected := "Validate files, Parse STL arguments, Check preconditions, Prepare geometry, Export 3MF, Print model, Report"
	if got := strings.Join(names, ", "); got != expected {
		t.Errorf("Expected steps %q, got %q", expected, got)
	}
}

func TestExecuteSTLExport(t *testing.T) {
	dir := setup(t)
	output := filepath.Join(dir, "out.3mf")

	plan, err := NewPlanner(nil).CreatePlan(Request{
		Inputs:    []string{filepath.Join(dir, "tri.stl")},
		Output:    output,
		Overrides: models.ExportSettings{Unit: "inch"},
		Title:     "Triangle",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("Expected a zip package")
	}
	if plan.Context.Written != int64(len(data)) {
		t.Errorf("Expected %d written bytes, got %d", len(data), plan.Context.Written)
	}
	if plan.Context.Info.Options.Unit != "inch" || plan.Context.Info.Title != "Triangle" {
		t.Errorf("Overrides not applied: %+v", plan.Context.Info)
	}
}

func TestExecuteToStdoutWithModel(t *testing.T) {
	dir := setup(t)
	var stdout, stderr bytes.Buffer
	sink := logger.NewCounter()

	plan, err := NewPlanner(sink).CreatePlan(Request{
		Inputs:     []string{filepath.Join(dir, "tri.stl")},
		Output:     "-",
		PrintModel: true,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if int64(stdout.Len()) != plan.Context.Written {
		t.Errorf("Expected only the %d package bytes on stdout, got %d", plan.Context.Written, stdout.Len())
	}
	if _, err := zip.NewReader(bytes.NewReader(stdout.Bytes()), int64(stdout.Len())); err != nil {
		t.Errorf("Expected a readable package on stdout: %v", err)
	}
	if strings.Contains(stdout.String(), "<?xml") {
		t.Error("The printed model must not follow the package on stdout")
	}
	if !strings.Contains(stderr.String(), `<model unit="millimeter"`) {
		t.Error("Expected the printed model on stderr")
	}
	if sink.Total() != 0 {
		t.Errorf("Expected no messages, got %v", sink.Entries)
	}
}

func TestExecutePrintModelToFile(t *testing.T) {
	dir := setup(t)
	var stdout, stderr bytes.Buffer

	plan, err := NewPlanner(nil).CreatePlan(Request{
		Inputs:     []string{filepath.Join(dir, "tri.stl")},
		Output:     filepath.Join(dir, "out.3mf"),
		PrintModel: true,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), `<model unit="millimeter"`) {
		t.Error("Expected the printed model on stdout")
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
}

func TestPrintModelReportsMessagesOnce(t *testing.T) {
	dir := setup(t)
	project := `output: open.3mf
objects:
  - name: open
    solid: true
    mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
      faces: [[0, 1, 2]]
`
	projectPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projectPath, []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := NewPlanner(nil).CreatePlan(Request{
		Inputs:     []string{projectPath},
		PrintModel: true,
		Stdout:     io.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if n := plan.Context.Messages.Count(logger.GroupExportWarning); n != 1 {
		t.Errorf("Expected the manifold warning once, got %d", n)
	}
}

func TestExecuteProject(t *testing.T) {
	dir := setup(t)
	project := `output: parts.3mf
objects:
  - name: tri
    file: tri.stl
  - name: quad
    mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
      faces: [[0, 1, 2, 3]]
`
	projectPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projectPath, []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := NewPlanner(nil).CreatePlan(Request{Inputs: []string{projectPath}})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "parts.3mf")); err != nil {
		t.Errorf("Expected output next to the project: %v", err)
	}
	if n := plan.Context.Messages.Total(); n != 0 {
		t.Errorf("Expected no messages, got %v", plan.Context.Messages.Entries)
	}
}

func TestExecuteFailsOnExportErrors(t *testing.T) {
	dir := setup(t)
	project := `output: broken.3mf
objects:
  - name: flat
    mesh:
      vertices: [[0, 0, 0], [1, 0, 0], [2, 0, 0]]
      faces: [[0, 1, 1]]
`
	projectPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projectPath, []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := NewPlanner(nil).CreatePlan(Request{Inputs: []string{projectPath}})
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(); err == nil {
		t.Error("Expected the degenerate triangle to fail the export")
	}
	if plan.Context.Messages.Errors() == 0 {
		t.Error("Expected logged export errors")
	}
}

func TestSummarize(t *testing.T) {
	quad := &geometry.PolyhedralMesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 2, Y: 3, Z: 0}, {X: 0, Y: 3, Z: 0}},
		Faces:    [][]int{{0, 1, 2, 3}},
	}

	single := Summarize(quad, &models.Project{Objects: []models.ProjectObject{{Name: "quad"}}})
	if len(single) != 1 || single[0].Name != "quad" {
		t.Fatalf("Expected one part named quad, got %+v", single)
	}
	if single[0].Vertices != 4 || single[0].Triangles != 2 {
		t.Errorf("Expected 4 vertices and 2 triangles, got %d and %d", single[0].Vertices, single[0].Triangles)
	}
	if single[0].Bounds.Width() != 2 || single[0].Bounds.Height() != 3 || single[0].Bounds.Depth() != 0 {
		t.Errorf("Unexpected bounds %+v", single[0].Bounds)
	}

	var list geometry.CompositeList
	list.Add("a", quad)
	list.Add("empty", &geometry.BooleanSolid{})
	list.Add("b", &geometry.BooleanSolid{Solid: geometry.NewMeshSolid(quad)})

	parts := Summarize(&list, nil)
	if len(parts) != 2 || parts[0].Name != "a" || parts[1].Name != "b" {
		t.Errorf("Expected parts a and b, got %+v", parts)
	}

	shifted := &geometry.PolyhedralMesh{
		Vertices: []r3.Vec{{X: 5, Y: 1, Z: -1}, {X: 6, Y: 1, Z: 2}, {X: 6, Y: 2, Z: 2}},
		Faces:    [][]int{{0, 1, 2}},
	}
	list.Add("c", shifted)
	total, err := TotalBounds(Summarize(&list, nil))
	if err != nil {
		t.Fatalf("TotalBounds() error = %v", err)
	}
	if total.MinX != 0 || total.MaxX != 6 || total.MinZ != -1 || total.MaxZ != 2 || total.MaxY != 3 {
		t.Errorf("Unexpected total bounds %+v", total)
	}

	if Summarize(nil, nil) != nil {
		t.Error("Expected no parts without geometry")
	}
}

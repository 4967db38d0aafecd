package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/models"
)

const triangleSTL = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 0 0
    endloop
  endfacet
endsolid tri
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.stl", triangleSTL)
	projectPath := writeFile(t, dir, "project.yaml", `
output: out/result.3mf
title: Demo
objects:
  - name: tri
    file: tri.stl
    color: "#ff0000"
`)

	project, err := NewLoader().Load(projectPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	absDir, _ := filepath.Abs(dir)
	if project.Output != filepath.Join(absDir, "out", "result.3mf") {
		t.Errorf("Expected absolute output path, got %s", project.Output)
	}
	if project.Objects[0].File != filepath.Join(absDir, "tri.stl") {
		t.Errorf("Expected absolute object path, got %s", project.Objects[0].File)
	}
	if project.Title != "Demo" {
		t.Errorf("Expected title Demo, got %s", project.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewLoader().Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing project file")
	}

	bad := writeFile(t, dir, "bad.yaml", "objects: [")
	if _, err := NewLoader().Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected YAML error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.stl", triangleSTL)
	projectPath := filepath.Join(dir, "project.yaml")

	square := &models.ProjectMesh{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:    [][]int{{0, 1, 2, 3}},
	}

	tests := []struct {
		name    string
		project models.Project
		wantErr string
	}{
		{
			name:    "missing output",
			project: models.Project{Objects: []models.ProjectObject{{Name: "a", File: "tri.stl"}}},
			wantErr: "output file must be specified",
		},
		{
			name:    "no objects",
			project: models.Project{Output: "out.3mf"},
			wantErr: "at least one object must be defined",
		},
		{
			name:    "invalid default color",
			project: models.Project{Output: "out.3mf", DefaultColor: "yellow", Objects: []models.ProjectObject{{Name: "a", File: "tri.stl"}}},
			wantErr: "invalid default_color",
		},
		{
			name:    "missing name",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{File: "tri.stl"}}},
			wantErr: "object 0: name is required",
		},
		{
			name:    "no source",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a"}}},
			wantErr: "either file or mesh is required",
		},
		{
			name:    "file and mesh",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", File: "tri.stl", Mesh: square}}},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing file",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", File: "nope.stl"}}},
			wantErr: "file not found",
		},
		{
			name:    "invalid color",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", File: "tri.stl", Color: "#12"}}},
			wantErr: "invalid color",
		},
		{
			name: "face with bad index",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", Mesh: &models.ProjectMesh{
				Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
				Faces:    [][]int{{0, 1, 3}},
			}}}},
			wantErr: "unknown vertex 3",
		},
		{
			name: "face color count",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", Mesh: &models.ProjectMesh{
				Vertices:   square.Vertices,
				Faces:      square.Faces,
				Colors:     []string{"#ff0000"},
				FaceColors: []int{0, 0},
			}}}},
			wantErr: "one entry per face",
		},
		{
			name: "face color index",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", Mesh: &models.ProjectMesh{
				Vertices:   square.Vertices,
				Faces:      square.Faces,
				Colors:     []string{"#ff0000"},
				FaceColors: []int{1},
			}}}},
			wantErr: "unknown color 1",
		},
		{
			name:    "valid file",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", File: "tri.stl", Color: "#00ff00"}}},
		},
		{
			name:    "valid mesh",
			project: models.Project{Output: "out.3mf", Objects: []models.ProjectObject{{Name: "a", Mesh: square}}},
		},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.Validate(&tt.project, projectPath)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "left.stl", triangleSTL)
	b := writeFile(t, dir, "right.stl", triangleSTL)

	project, err := NewLoader().FromFiles([]string{a, b}, "out.3mf")
	if err != nil {
		t.Fatalf("FromFiles() error = %v", err)
	}
	if len(project.Objects) != 2 || project.Objects[0].Name != "left" || project.Objects[1].Name != "right" {
		t.Errorf("Unexpected objects: %+v", project.Objects)
	}

	if _, err := NewLoader().FromFiles(nil, "out.3mf"); err == nil {
		t.Error("Expected error without input files")
	}
}

func TestBuildGeometrySingleObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.stl", triangleSTL)

	project := &models.Project{Output: "out.3mf", Objects: []models.ProjectObject{
		{Name: "tri", File: path, Color: "#ff0000"},
	}}

	g, err := NewLoader().BuildGeometry(project)
	if err != nil {
		t.Fatalf("BuildGeometry() error = %v", err)
	}

	mesh, ok := g.(*geometry.PolyhedralMesh)
	if !ok {
		t.Fatalf("Expected a PolyhedralMesh, got %T", g)
	}
	if mesh.VertexCount() != 3 || mesh.FaceCount() != 2 {
		t.Errorf("Expected 3 shared vertices and 2 faces, got %d and %d", mesh.VertexCount(), mesh.FaceCount())
	}
	if len(mesh.Colors) != 1 || mesh.ColorIndex(1) != 0 {
		t.Errorf("Expected the object color on every face, got %v %v", mesh.Colors, mesh.ColorIndices)
	}
	red, _ := geometry.ParseHexColor("#ff0000")
	if mesh.Colors[0] != red {
		t.Errorf("Expected red, got %v", mesh.Colors[0])
	}
}

func TestBuildGeometryComposite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.stl", triangleSTL)

	project := &models.Project{Output: "out.3mf", Objects: []models.ProjectObject{
		{Name: "file", File: path, Solid: true},
		{Name: "inline", Mesh: &models.ProjectMesh{
			Vertices:   [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			Faces:      [][]int{{0, 1, 2, 3}},
			Colors:     []string{"#0000ff"},
			FaceColors: []int{0},
		}},
	}}

	g, err := NewLoader().BuildGeometry(project)
	if err != nil {
		t.Fatalf("BuildGeometry() error = %v", err)
	}

	list, ok := g.(*geometry.CompositeList)
	if !ok {
		t.Fatalf("Expected a CompositeList, got %T", g)
	}
	if len(list.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(list.Children))
	}
	if list.Children[0].Name != "file" || list.Children[1].Name != "inline" {
		t.Errorf("Unexpected child names %s, %s", list.Children[0].Name, list.Children[1].Name)
	}
	if _, ok := list.Children[0].Geometry.(*geometry.BooleanSolid); !ok {
		t.Errorf("Expected solid object to be a BooleanSolid, got %T", list.Children[0].Geometry)
	}

	inline, ok := list.Children[1].Geometry.(*geometry.PolyhedralMesh)
	if !ok {
		t.Fatalf("Expected inline object to be a PolyhedralMesh, got %T", list.Children[1].Geometry)
	}
	if len(inline.Faces[0]) != 4 || inline.ColorIndex(0) != 0 {
		t.Errorf("Inline mesh not converted as given: %+v", inline)
	}
}

func TestExportInfo(t *testing.T) {
	precision := uint32(3)
	project := &models.Project{
		Output: "/tmp/parts/bracket.3mf",
		Export: &models.ExportSettings{Unit: "inch", DecimalPrecision: &precision},
	}

	info := ExportInfo(project)
	if info.Title != "bracket" {
		t.Errorf("Expected title from output name, got %s", info.Title)
	}
	if info.Options.Unit != "inch" || info.Options.DecimalPrecision != 3 {
		t.Errorf("Overrides not applied: %+v", info.Options)
	}
	if info.Options.ColorMode != "model" {
		t.Errorf("Expected default color mode, got %s", info.Options.ColorMode)
	}
	yellow, _ := geometry.ParseHexColor("#f9d72c")
	if info.DefaultColor != yellow {
		t.Errorf("Expected default color %v, got %v", yellow, info.DefaultColor)
	}

	project.Title = "Named"
	project.DefaultColor = "#000000"
	info = ExportInfo(project)
	if info.Title != "Named" || info.DefaultColor != (geometry.Color{0, 0, 0, 1}) {
		t.Errorf("Expected explicit title and color, got %s %v", info.Title, info.DefaultColor)
	}
}

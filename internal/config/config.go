package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/go3mfexport/internal/export"
	"github.com/philipparndt/go3mfexport/internal/geometry"
	"github.com/philipparndt/go3mfexport/internal/models"
	"github.com/philipparndt/go3mfexport/internal/stl"
)

// Loader handles loading and validating YAML project files
type Loader struct {
	parser *stl.Parser
}

// NewLoader creates a new project loader
func NewLoader() *Loader {
	return &Loader{parser: stl.NewParser()}
}

// Load reads and parses a YAML project file
func (l *Loader) Load(projectPath string) (*models.Project, error) {
	data, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var project models.Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(&project, projectPath); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	// Convert relative paths to absolute paths (relative to the project file)
	absProjectDir, err := filepath.Abs(filepath.Dir(projectPath))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of project directory: %w", err)
	}

	for i := range project.Objects {
		obj := &project.Objects[i]
		if obj.File != "" && !filepath.IsAbs(obj.File) {
			obj.File = filepath.Join(absProjectDir, obj.File)
		}
	}
	if !filepath.IsAbs(project.Output) {
		project.Output = filepath.Join(absProjectDir, project.Output)
	}

	return &project, nil
}

// Validate checks if the project is valid
func (l *Loader) Validate(project *models.Project, projectPath string) error {
	if project.Output == "" {
		return fmt.Errorf("output file must be specified")
	}

	if len(project.Objects) == 0 {
		return fmt.Errorf("at least one object must be defined")
	}

	if project.DefaultColor != "" {
		if _, ok := geometry.ParseHexColor(project.DefaultColor); !ok {
			return fmt.Errorf("invalid default_color %q", project.DefaultColor)
		}
	}

	projectDir := filepath.Dir(projectPath)
	for i, obj := range project.Objects {
		if err := l.validateObject(obj, i, projectDir); err != nil {
			return err
		}
	}

	return nil
}

// validateObject validates a single object definition
func (l *Loader) validateObject(obj models.ProjectObject, index int, projectDir string) error {
	if obj.Name == "" {
		return fmt.Errorf("object %d: name is required", index)
	}

	if obj.File == "" && obj.Mesh == nil {
		return fmt.Errorf("object %s: either file or mesh is required", obj.Name)
	}
	if obj.File != "" && obj.Mesh != nil {
		return fmt.Errorf("object %s: file and mesh are mutually exclusive", obj.Name)
	}

	if obj.Color != "" {
		if _, ok := geometry.ParseHexColor(obj.Color); !ok {
			return fmt.Errorf("object %s: invalid color %q", obj.Name, obj.Color)
		}
	}

	if obj.File != "" {
		filePath := obj.File
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(projectDir, filePath)
		}
		if _, err := os.Stat(filePath); err != nil {
			return fmt.Errorf("object %s: file not found: %s", obj.Name, obj.File)
		}
		return nil
	}

	return validateMesh(obj.Name, obj.Mesh)
}

func validateMesh(name string, mesh *models.ProjectMesh) error {
	if len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
		return fmt.Errorf("object %s: mesh needs vertices and faces", name)
	}

	for i, face := range mesh.Faces {
		if len(face) < 3 {
			return fmt.Errorf("object %s: face %d has fewer than 3 vertices", name, i)
		}
		for _, idx := range face {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return fmt.Errorf("object %s: face %d references unknown vertex %d", name, i, idx)
			}
		}
	}

	for _, c := range mesh.Colors {
		if _, ok := geometry.ParseHexColor(c); !ok {
			return fmt.Errorf("object %s: invalid mesh color %q", name, c)
		}
	}

	if len(mesh.FaceColors) > 0 {
		if len(mesh.FaceColors) != len(mesh.Faces) {
			return fmt.Errorf("object %s: face_colors needs one entry per face (%d), got %d", name, len(mesh.Faces), len(mesh.FaceColors))
		}
		for i, ci := range mesh.FaceColors {
			if ci < -1 || ci >= len(mesh.Colors) {
				return fmt.Errorf("object %s: face %d uses unknown color %d", name, i, ci)
			}
		}
	}

	return nil
}

// FromFiles creates a project exporting the given STL files to output
func (l *Loader) FromFiles(paths []string, output string) (*models.Project, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	project := &models.Project{Output: output}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		project.Objects = append(project.Objects, models.ProjectObject{Name: name, File: path})
	}

	if err := l.Validate(project, "."); err != nil {
		return nil, err
	}
	return project, nil
}

// BuildGeometry creates the geometry tree of a project. A single object is
// returned as is, several objects are grouped in a CompositeList.
func (l *Loader) BuildGeometry(project *models.Project) (geometry.Geometry, error) {
	var list geometry.CompositeList

	for _, obj := range project.Objects {
		mesh, err := l.loadMesh(obj)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.Name, err)
		}

		if obj.Color != "" {
			color, _ := geometry.ParseHexColor(obj.Color)
			mesh.Colors = []geometry.Color{color}
			mesh.ColorIndices = make([]int, mesh.FaceCount())
		}

		var g geometry.Geometry = mesh
		if obj.Solid {
			g = &geometry.BooleanSolid{Solid: geometry.NewMeshSolid(mesh)}
		}
		list.Add(obj.Name, g)
	}

	if len(list.Children) == 1 {
		return list.Children[0].Geometry, nil
	}
	return &list, nil
}

func (l *Loader) loadMesh(obj models.ProjectObject) (*geometry.PolyhedralMesh, error) {
	if obj.File != "" {
		stlMesh, err := l.parser.Parse(obj.File)
		if err != nil {
			return nil, fmt.Errorf("error parsing STL: %w", err)
		}
		return stlMesh.ToPolyhedralMesh(), nil
	}

	mesh := &geometry.PolyhedralMesh{
		Vertices:     make([]r3.Vec, len(obj.Mesh.Vertices)),
		Faces:        make([][]int, len(obj.Mesh.Faces)),
		ColorIndices: append([]int(nil), obj.Mesh.FaceColors...),
	}
	for i, v := range obj.Mesh.Vertices {
		mesh.Vertices[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	for i, f := range obj.Mesh.Faces {
		mesh.Faces[i] = append([]int(nil), f...)
	}
	for _, c := range obj.Mesh.Colors {
		color, ok := geometry.ParseHexColor(c)
		if !ok {
			return nil, fmt.Errorf("invalid mesh color %q", c)
		}
		mesh.Colors = append(mesh.Colors, color)
	}
	return mesh, nil
}

// ExportInfo returns the export input of a project: the title, the default
// color and the export options with the project overrides applied
func ExportInfo(project *models.Project) export.Info {
	opts := export.DefaultOptions()
	opts.Apply(project.Export)

	title := project.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(project.Output), filepath.Ext(project.Output))
	}

	defaultColor, ok := geometry.ParseHexColor(project.DefaultColor)
	if !ok {
		defaultColor, _ = geometry.ParseHexColor(export.DefaultColor)
	}

	return export.Info{Title: title, DefaultColor: defaultColor, Options: opts}
}

package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/philipparndt/go3mfexport/internal/geometry"
)

const (
	binaryHeaderSize   = 80
	binaryTriangleSize = 50
)

// Vector3 represents a 3D vector
type Vector3 struct {
	X, Y, Z float32
}

// Triangle represents a triangle in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// Mesh represents an STL mesh
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// Parser parses STL files
type Parser struct{}

// NewParser creates a new STL parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an STL file and returns the mesh data
func (p *Parser) Parse(filename string) (*Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	return p.ParseBytes(data, filepath.Base(filename))
}

// ParseBytes parses STL data. A file is binary when its size matches the
// triangle count in the header, otherwise it has to be ASCII.
func (p *Parser) ParseBytes(data []byte, name string) (*Mesh, error) {
	if isBinary(data) {
		return p.parseBinary(data, name)
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return p.parseASCII(bytes.NewReader(data), name)
	}
	return nil, fmt.Errorf("unknown STL format in %s", name)
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryTriangleSize
}

// parseASCII parses the facet/vertex text format. Keywords other than
// solid, facet, vertex and endfacet are ignored.
func (p *Parser) parseASCII(reader io.Reader, name string) (*Mesh, error) {
	mesh := &Mesh{Name: name, Triangles: []Triangle{}}

	var (
		normal   Vector3
		corners  [3]Vector3
		numVerts int
		lineNo   int
	)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch keyword := fields[0]; keyword {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			normal, numVerts = Vector3{}, 0
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid normal: %w", lineNo, err)
				}
				normal = n
			}
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			if numVerts == len(corners) {
				return nil, fmt.Errorf("line %d: facet has more than 3 vertices", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNo, err)
			}
			corners[numVerts] = v
			numVerts++
		case "endfacet":
			if numVerts != len(corners) {
				return nil, fmt.Errorf("line %d: facet has %d vertices", lineNo, numVerts)
			}
			mesh.Triangles = append(mesh.Triangles, Triangle{Normal: normal, V1: corners[0], V2: corners[1], V3: corners[2]})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return mesh, nil
}

func parseVector(fields []string) (Vector3, error) {
	var c [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Vector3{}, err
		}
		c[i] = float32(v)
	}
	return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// facetRecord is one triangle of a binary STL file
type facetRecord struct {
	Triangle   Triangle
	Attributes uint16
}

// parseBinary decodes the triangles after the header and count. The size was
// checked by isBinary.
func (p *Parser) parseBinary(data []byte, name string) (*Mesh, error) {
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	records := make([]facetRecord, count)
	if err := binary.Read(bytes.NewReader(data[binaryHeaderSize+4:]), binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("error reading triangles of %s: %w", name, err)
	}

	mesh := &Mesh{Name: name, Triangles: make([]Triangle, count)}
	for i, rec := range records {
		mesh.Triangles[i] = rec.Triangle
	}
	return mesh, nil
}

// ToPolyhedralMesh converts the triangle soup into an indexed mesh. Vertices
// with identical positions are shared, in order of first use.
func (m *Mesh) ToPolyhedralMesh() *geometry.PolyhedralMesh {
	vertexMap := make(map[Vector3]int)
	result := &geometry.PolyhedralMesh{
		Faces: make([][]int, 0, len(m.Triangles)),
	}

	getVertexIndex := func(v Vector3) int {
		if idx, exists := vertexMap[v]; exists {
			return idx
		}
		idx := len(result.Vertices)
		vertexMap[v] = idx
		result.Vertices = append(result.Vertices, r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)})
		return idx
	}

	for _, tri := range m.Triangles {
		result.Faces = append(result.Faces, []int{
			getVertexIndex(tri.V1),
			getVertexIndex(tri.V2),
			getVertexIndex(tri.V3),
		})
	}

	return result
}

package formats

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/geometry"
)

// glTF component types.
const (
	gltfComponentFloat = 5126
	gltfComponentUint  = 5125
)

// gltfDocument is the glTF 2.0 JSON scene structure this exporter emits.
type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes"`
	Accessors   []gltfAccessor   `json:"accessors"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Buffers     []gltfBuffer     `json:"buffers"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfNode struct {
	Mesh int `json:"mesh"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type gltfBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
}

// exportGLTF writes the mesh as a glTF 2.0 JSON document with an external
// .bin buffer next to it. GLB packaging is not supported.
func (e *Exporter) exportGLTF(mesh *geometry.Mesh, path string, opts GLTFOptions) error {
	if opts.Binary {
		return fmt.Errorf("%w: binary GLTF (GLB) export not supported", ErrExport)
	}

	if n := countTruncatedFaces(mesh.Faces); n > 0 {
		// Same triangles-only policy as STL: first 3 indices per face.
		e.log.Warn("truncating n-gon faces to first 3 indices for GLTF",
			zap.Int("faces", n))
	}

	binPath := strings.TrimSuffix(path, ".gltf") + ".bin"

	doc := buildGLTFDocument(mesh, filepath.Base(binPath))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: GLTF export: %v", ErrExport, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: GLTF export: %v", ErrExport, err)
	}

	return writeGLTFBuffer(binPath, mesh)
}

// buildGLTFDocument assembles the scene document: one node, one mesh, a
// float32 position accessor and a uint32 scalar index accessor over a
// single external buffer.
func buildGLTFDocument(mesh *geometry.Mesh, binName string) gltfDocument {
	bounds := mesh.Bounds()
	positionBytes := len(mesh.Vertices) * 12
	indexBytes := len(mesh.Faces) * 12

	return gltfDocument{
		Asset: gltfAsset{
			Version:   "2.0",
			Generator: "text3d",
		},
		Scene:  0,
		Scenes: []gltfScene{{Nodes: []int{0}}},
		Nodes:  []gltfNode{{Mesh: 0}},
		Meshes: []gltfMesh{{
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{"POSITION": 0},
				Indices:    1,
			}},
		}},
		Accessors: []gltfAccessor{
			{
				BufferView:    0,
				ComponentType: gltfComponentFloat,
				Count:         len(mesh.Vertices),
				Type:          "VEC3",
				Min:           []float64{bounds.Min.X, bounds.Min.Y, bounds.Min.Z},
				Max:           []float64{bounds.Max.X, bounds.Max.Y, bounds.Max.Z},
			},
			{
				BufferView:    1,
				ComponentType: gltfComponentUint,
				Count:         len(mesh.Faces) * 3,
				Type:          "SCALAR",
			},
		},
		BufferViews: []gltfBufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: positionBytes},
			{Buffer: 0, ByteOffset: positionBytes, ByteLength: indexBytes},
		},
		Buffers: []gltfBuffer{{
			ByteLength: positionBytes + indexBytes,
			URI:        binName,
		}},
	}
}

// writeGLTFBuffer writes the flat binary buffer: float32 positions
// followed by uint32 indices, first 3 indices per face.
func writeGLTFBuffer(path string, mesh *geometry.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: GLTF buffer export: %v", ErrExport, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, v := range mesh.Vertices {
		binary.Write(bw, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
	}
	for _, face := range mesh.Faces {
		if len(face) < 3 {
			continue
		}
		binary.Write(bw, binary.LittleEndian, [3]uint32{uint32(face[0]), uint32(face[1]), uint32(face[2])})
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: GLTF buffer export: %v", ErrExport, err)
	}
	return f.Close()
}

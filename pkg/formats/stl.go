package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/geometry"
	"github.com/Faultbox/text3d/pkg/math"
)

// stlSolidName is the solid name used in ASCII output.
const stlSolidName = "exported_mesh"

// stlHeaderText fills the start of the 80-byte binary header; the rest is
// NUL padding.
const stlHeaderText = "Binary STL exported by text3d"

// exportSTL writes the mesh to an STL file.
func (e *Exporter) exportSTL(mesh *geometry.Mesh, path string, opts STLOptions) error {
	if n := countTruncatedFaces(mesh.Faces); n > 0 {
		// STL is triangles-only; faces with more than 3 indices keep
		// only their first 3, dropping the remaining area.
		e.log.Warn("truncating n-gon faces to first 3 indices for STL",
			zap.Int("faces", n))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: STL export: %v", ErrExport, err)
	}
	defer f.Close()

	if writeErr := WriteSTL(f, mesh, opts.ASCII); writeErr != nil {
		return writeErr
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: STL export: %v", ErrExport, err)
	}
	return nil
}

// WriteSTL encodes the mesh as STL. In binary mode the layout is an
// 80-byte header, a little-endian uint32 triangle count and one 50-byte
// record per triangle (normal, three vertices as float32, zero attribute
// count). Faces with more than 3 indices are truncated to their first 3.
// The per-triangle normal is recomputed from the triangle's own vertices;
// precomputed mesh normals are ignored.
func WriteSTL(w io.Writer, mesh *geometry.Mesh, ascii bool) error {
	if ascii {
		return writeSTLASCII(w, mesh)
	}
	return writeSTLBinary(w, mesh)
}

func writeSTLASCII(w io.Writer, mesh *geometry.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", stlSolidName)
	for _, face := range mesh.Faces {
		if len(face) < 3 {
			continue
		}
		v1 := mesh.Vertices[face[0]]
		v2 := mesh.Vertices[face[1]]
		v3 := mesh.Vertices[face[2]]
		n := triangleNormal(v1, v2, v3)

		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		fmt.Fprintf(bw, "      vertex %g %g %g\n", v1.X, v1.Y, v1.Z)
		fmt.Fprintf(bw, "      vertex %g %g %g\n", v2.X, v2.Y, v2.Z)
		fmt.Fprintf(bw, "      vertex %g %g %g\n", v3.X, v3.Y, v3.Z)
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", stlSolidName)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: STL export: %v", ErrExport, err)
	}
	return nil
}

func writeSTLBinary(w io.Writer, mesh *geometry.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], stlHeaderText)
	bw.Write(header[:])

	var count uint32
	for _, face := range mesh.Faces {
		if len(face) >= 3 {
			count++
		}
	}
	binary.Write(bw, binary.LittleEndian, count)

	for _, face := range mesh.Faces {
		if len(face) < 3 {
			continue
		}
		v1 := mesh.Vertices[face[0]]
		v2 := mesh.Vertices[face[1]]
		v3 := mesh.Vertices[face[2]]
		n := triangleNormal(v1, v2, v3)

		record := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(v1.X), float32(v1.Y), float32(v1.Z),
			float32(v2.X), float32(v2.Y), float32(v2.Z),
			float32(v3.X), float32(v3.Y), float32(v3.Z),
		}
		binary.Write(bw, binary.LittleEndian, record)
		binary.Write(bw, binary.LittleEndian, uint16(0))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: STL export: %v", ErrExport, err)
	}
	return nil
}

// triangleNormal returns the unit normal of the triangle (v1, v2, v3),
// or (0, 0, 1) for degenerate triangles.
func triangleNormal(v1, v2, v3 math.Vec3) math.Vec3 {
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	if n.Length() == 0 {
		return math.Vec3{X: 0, Y: 0, Z: 1}
	}
	return n.Normalize()
}

// countTruncatedFaces counts faces that lose indices under the
// first-3-indices triangle policy.
func countTruncatedFaces(faces [][]int) int {
	n := 0
	for _, face := range faces {
		if len(face) > 3 {
			n++
		}
	}
	return n
}

package formats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/text3d/pkg/geometry"
)

// plyDefaultColor is written for vertices without an explicit color.
var plyDefaultColor = [3]uint8{128, 128, 128}

// exportPLY writes the mesh to a PLY file.
func (e *Exporter) exportPLY(mesh *geometry.Mesh, path string, opts PLYOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: PLY export: %v", ErrExport, err)
	}
	defer f.Close()

	if err := WritePLY(f, mesh, opts.ASCII, opts.Colors); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: PLY export: %v", ErrExport, err)
	}
	return nil
}

// WritePLY encodes the mesh as PLY, either ASCII or binary little-endian.
// A non-nil colors slice adds uchar RGB properties per vertex; vertices
// beyond its length get mid-gray. Faces are written as variable-length
// index lists (uchar count followed by int32 indices in binary mode).
func WritePLY(w io.Writer, mesh *geometry.Mesh, ascii bool, colors [][3]uint8) error {
	hasColors := colors != nil

	bw := bufio.NewWriter(w)

	format := "binary_little_endian"
	if ascii {
		format = "ascii"
	}
	fmt.Fprintf(bw, "ply\n")
	fmt.Fprintf(bw, "format %s 1.0\n", format)
	fmt.Fprintf(bw, "element vertex %d\n", len(mesh.Vertices))
	fmt.Fprintf(bw, "property float x\n")
	fmt.Fprintf(bw, "property float y\n")
	fmt.Fprintf(bw, "property float z\n")
	if hasColors {
		fmt.Fprintf(bw, "property uchar red\n")
		fmt.Fprintf(bw, "property uchar green\n")
		fmt.Fprintf(bw, "property uchar blue\n")
	}
	fmt.Fprintf(bw, "element face %d\n", len(mesh.Faces))
	fmt.Fprintf(bw, "property list uchar int vertex_indices\n")
	fmt.Fprintf(bw, "end_header\n")

	if ascii {
		for i, v := range mesh.Vertices {
			fmt.Fprintf(bw, "%g %g %g", v.X, v.Y, v.Z)
			if hasColors {
				c := vertexColor(colors, i)
				fmt.Fprintf(bw, " %d %d %d", c[0], c[1], c[2])
			}
			bw.WriteByte('\n')
		}
		for _, face := range mesh.Faces {
			fmt.Fprintf(bw, "%d", len(face))
			for _, idx := range face {
				fmt.Fprintf(bw, " %d", idx)
			}
			bw.WriteByte('\n')
		}
	} else {
		for i, v := range mesh.Vertices {
			binary.Write(bw, binary.LittleEndian, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
			if hasColors {
				c := vertexColor(colors, i)
				bw.Write(c[:])
			}
		}
		for _, face := range mesh.Faces {
			bw.WriteByte(uint8(len(face)))
			for _, idx := range face {
				binary.Write(bw, binary.LittleEndian, int32(idx))
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: PLY export: %v", ErrExport, err)
	}
	return nil
}

// vertexColor returns the color for vertex i, defaulting to mid-gray
// when the slice is too short.
func vertexColor(colors [][3]uint8, i int) [3]uint8 {
	if i < len(colors) {
		return colors[i]
	}
	return plyDefaultColor
}

package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/text3d/pkg/geometry"
)

// defaultMaterialName is used when no material name is configured.
const defaultMaterialName = "default_material"

// exportOBJ writes the mesh to an OBJ file, plus a companion MTL file
// when materials are requested.
func (e *Exporter) exportOBJ(mesh *geometry.Mesh, path string, opts OBJOptions) error {
	materialName := opts.MaterialName
	if materialName == "" {
		materialName = defaultMaterialName
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: OBJ export: %v", ErrExport, err)
	}
	defer f.Close()

	mtlName := ""
	if opts.Materials {
		mtlName = strings.TrimSuffix(filepath.Base(path), ".obj") + ".mtl"
	}
	if err := WriteOBJ(f, mesh, mtlName, materialName); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: OBJ export: %v", ErrExport, err)
	}

	if opts.Materials {
		mtlPath := strings.TrimSuffix(path, ".obj") + ".mtl"
		if err := writeMTLFile(mtlPath, materialName); err != nil {
			return err
		}
	}
	return nil
}

// WriteOBJ encodes the mesh as Wavefront OBJ: one `v` line per vertex,
// one `vn` line per face normal, and `f` lines with 1-based indices.
// Faces keep their full index list (OBJ supports n-gons). A non-empty
// mtlName emits mtllib/usemtl references.
func WriteOBJ(w io.Writer, mesh *geometry.Mesh, mtlName, materialName string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# OBJ file exported by text3d\n")
	if mtlName != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlName)
		fmt.Fprintf(bw, "usemtl %s\n", materialName)
	}

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}

	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	for _, face := range mesh.Faces {
		if len(face) < 3 {
			continue
		}
		bw.WriteString("f")
		for _, idx := range face {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: OBJ export: %v", ErrExport, err)
	}
	return nil
}

// writeMTLFile writes a companion material file with fixed constants.
func writeMTLFile(path, materialName string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: MTL export: %v", ErrExport, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# MTL file exported by text3d\n")
	fmt.Fprintf(bw, "newmtl %s\n", materialName)
	fmt.Fprintf(bw, "Ka 0.2 0.2 0.2\n")
	fmt.Fprintf(bw, "Kd 0.8 0.8 0.8\n")
	fmt.Fprintf(bw, "Ks 0.5 0.5 0.5\n")
	fmt.Fprintf(bw, "Ns 32.0\n")
	fmt.Fprintf(bw, "d 1.0\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: MTL export: %v", ErrExport, err)
	}
	return f.Close()
}

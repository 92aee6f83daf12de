package formats

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// validateArtifact sanity-checks the bytes just written for a format.
// Any failure is an ErrValidation.
func validateArtifact(path string, format Format) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: exported file does not exist: %s", ErrValidation, path)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%w: exported file is empty: %s", ErrValidation, path)
	}

	switch format {
	case FormatSTL:
		return validateSTLFile(path)
	case FormatOBJ:
		return validateOBJFile(path)
	case FormatPLY:
		return validatePLYFile(path)
	case FormatGLTF:
		return validateGLTFFile(path)
	}
	return nil
}

// validateSTLFile checks the 80-byte header and, for ASCII files, the
// closing keyword.
func validateSTLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading STL: %v", ErrValidation, err)
	}
	if len(data) < 80 {
		return fmt.Errorf("%w: invalid STL header", ErrValidation)
	}
	if bytes.HasPrefix(data, []byte("solid")) {
		if !bytes.Contains(data, []byte("endsolid")) {
			return fmt.Errorf("%w: invalid ASCII STL format", ErrValidation)
		}
		return nil
	}
	if len(data) < 84 {
		return fmt.Errorf("%w: invalid binary STL format", ErrValidation)
	}
	return nil
}

// validateOBJFile checks for at least one vertex and one face line.
func validateOBJFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: reading OBJ: %v", ErrValidation, err)
	}
	defer f.Close()

	hasVertices := false
	hasFaces := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "v ") {
			hasVertices = true
		} else if strings.HasPrefix(line, "f ") {
			hasFaces = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading OBJ: %v", ErrValidation, err)
	}

	if !hasVertices {
		return fmt.Errorf("%w: OBJ file has no vertices", ErrValidation)
	}
	if !hasFaces {
		return fmt.Errorf("%w: OBJ file has no faces", ErrValidation)
	}
	return nil
}

// validatePLYFile checks the 3-byte magic.
func validatePLYFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: reading PLY: %v", ErrValidation, err)
	}
	defer f.Close()

	magic := make([]byte, 3)
	if _, err := f.Read(magic); err != nil || string(magic) != "ply" {
		return fmt.Errorf("%w: invalid PLY file header", ErrValidation)
	}
	return nil
}

// validateGLTFFile checks the document parses and has asset version info.
func validateGLTFFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading GLTF: %v", ErrValidation, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: invalid GLTF JSON format", ErrValidation)
	}

	rawAsset, ok := doc["asset"]
	if !ok {
		return fmt.Errorf("%w: GLTF file missing asset information", ErrValidation)
	}
	var asset map[string]json.RawMessage
	if err := json.Unmarshal(rawAsset, &asset); err != nil {
		return fmt.Errorf("%w: invalid GLTF asset information", ErrValidation)
	}
	if _, ok := asset["version"]; !ok {
		return fmt.Errorf("%w: GLTF file missing version information", ErrValidation)
	}
	return nil
}

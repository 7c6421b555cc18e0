package material

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultQualityFactor is the quality factor of an entry that omits it,
// matching the #Material schema default.
const DefaultQualityFactor = 1.0

// yamlCatalog is the on-disk shape of a YAML catalog file:
//
//	materials:
//	  - id: zerodur
//	    name: Zerodur
//	    category: ultra_low_expansion
//	    alpha1: 5.0e-9
//	    ...
//	    range: {min: 4, max: 573}
type yamlCatalog struct {
	Materials []Coefficients `yaml:"materials"`
}

// LoadYAML reads catalog entries from a YAML file.
// Unknown fields are rejected so that typos (e.g. "alpha_1") fail loudly
// instead of silently decoding as zero.
func LoadYAML(path string) ([]Coefficients, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes catalog entries from YAML source.
func DecodeYAML(data []byte) ([]Coefficients, error) {
	var doc yamlCatalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog file is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Materials) == 0 {
		return nil, fmt.Errorf("materials list is required and must be non-empty")
	}

	// Apply the #Material defaults that differ from Go zero values.
	var keys struct {
		Materials []map[string]yaml.Node `yaml:"materials"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for i, m := range keys.Materials {
		if _, ok := m["quality_factor"]; !ok && i < len(doc.Materials) {
			doc.Materials[i].QualityFactor = DefaultQualityFactor
		}
	}
	return doc.Materials, nil
}

// LoadFile reads catalog entries from a CUE file or directory, or a YAML
// file, choosing the decoder by extension.
func LoadFile(path string) ([]Coefficients, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog not found: %w", err)
	}
	if info.IsDir() {
		return LoadCUE(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .cue, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadCatalog reads a catalog file and builds a validated Catalog from it.
func LoadCatalog(path string) (*Catalog, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(entries...)
}

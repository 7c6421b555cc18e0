package material

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// CompileError reports a CUE catalog entry that does not satisfy #Material.
type CompileError struct {
	Material string
	Field    string
	Message  string
	Pos      token.Pos
}

func (e *CompileError) Error() string {
	where := e.Field
	if e.Material != "" {
		where = e.Material + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// LoadCUE reads catalog entries from a .cue file or from every .cue file
// under a directory. Entries are checked against the embedded #Material
// schema; all entry errors are collected and returned joined.
//
// The result is not yet a Catalog: pass it to NewCatalog or Merge, which
// apply the cross-entry checks (uniqueness, NFC identifiers).
func LoadCUE(path string) ([]Coefficients, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindCUEFiles(path)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no CUE files found in %s", path)
		}
	}

	ctx := cuecontext.New()
	schema, err := compileSchema(ctx)
	if err != nil {
		return nil, err
	}

	var entries []Coefficients
	var errs []error
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		got, fileErrs := decodeCUE(schema, ctx.CompileBytes(data, cue.Filename(f)))
		entries = append(entries, got...)
		errs = append(errs, fileErrs...)
	}

	if len(errs) > 0 {
		return entries, errors.Join(errs...)
	}
	return entries, nil
}

// DecodeCUE decodes catalog entries from CUE source.
// filename is used only for error positions.
func DecodeCUE(src []byte, filename string) ([]Coefficients, error) {
	ctx := cuecontext.New()
	schema, err := compileSchema(ctx)
	if err != nil {
		return nil, err
	}
	entries, errs := decodeCUE(schema, ctx.CompileBytes(src, cue.Filename(filename)))
	if len(errs) > 0 {
		return entries, errors.Join(errs...)
	}
	return entries, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths, sorted.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func compileSchema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("material schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Material"))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("material schema: %w", err)
	}
	return def, nil
}

func decodeCUE(schema, v cue.Value) ([]Coefficients, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError("", err)}
	}

	materials := v.LookupPath(cue.ParsePath("material"))
	if !materials.Exists() {
		return nil, []error{&CompileError{
			Field:   "material",
			Message: "no materials declared (expected top-level \"material\" struct)",
			Pos:     v.Pos(),
		}}
	}

	iter, err := materials.Fields()
	if err != nil {
		return nil, []error{formatCUEError("", err)}
	}

	var entries []Coefficients
	var errs []error
	for iter.Next() {
		id := iter.Label()
		entry, err := compileMaterial(id, schema.Unify(iter.Value()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// compileMaterial decodes one #Material value, field by field.
func compileMaterial(id string, v cue.Value) (Coefficients, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Coefficients{}, formatCUEError(id, err)
	}

	c := Coefficients{ID: id}

	// name is optional; an absent name is not concrete and stays empty.
	if name, err := v.LookupPath(cue.ParsePath("name")).String(); err == nil {
		c.Name = name
	}

	catStr, err := v.LookupPath(cue.ParsePath("category")).String()
	if err != nil {
		return c, formatCUEError(id, err)
	}
	if c.Category, err = ParseCategory(catStr); err != nil {
		return c, &CompileError{Material: id, Field: "category", Message: err.Error(), Pos: v.Pos()}
	}

	fields := []struct {
		path string
		dst  *float64
	}{
		{"alpha1", &c.Alpha1},
		{"alpha1_uncertainty", &c.Alpha1Uncertainty},
		{"alpha2", &c.Alpha2},
		{"alpha3", &c.Alpha3},
		{"thermal_conductivity", &c.ThermalConductivity},
		{"specific_heat", &c.SpecificHeat},
		{"density", &c.Density},
		{"elastic_modulus", &c.ElasticModulus},
		{"range.min", &c.Range.Min},
		{"range.max", &c.Range.Max},
		{"quality_factor", &c.QualityFactor},
	}
	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if d, ok := fv.Default(); ok {
			fv = d
		}
		n, err := fv.Float64()
		if err != nil {
			return c, &CompileError{Material: id, Field: f.path, Message: err.Error(), Pos: fv.Pos()}
		}
		*f.dst = n
	}

	return c, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(id string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	ce := &CompileError{Material: id, Field: "cue", Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}

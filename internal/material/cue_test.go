package material

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCUE_ReferenceMatchesBuiltin(t *testing.T) {
	entries, err := LoadCUE(filepath.Join("testdata", "reference.cue"))
	require.NoError(t, err)
	require.Len(t, entries, 6)

	c, err := NewCatalog(entries...)
	require.NoError(t, err)

	for _, want := range Reference().Entries() {
		got, err := c.Get(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, want.ID)
	}
	assert.Equal(t, Reference().Fingerprint(), c.Fingerprint())
}

func TestLoadCUE_DefaultsAndOptionalName(t *testing.T) {
	entries, err := LoadCUE(filepath.Join("testdata", "extra.cue"))
	require.NoError(t, err)

	c, err := NewCatalog(entries...)
	require.NoError(t, err)
	assert.Equal(t, []string{"copper_ofhc", "fused_silica"}, c.IDs())

	silica, err := c.Get("fused_silica")
	require.NoError(t, err)
	assert.Equal(t, "Fused Silica", silica.Name)
	assert.Equal(t, Optical, silica.Category)
	assert.InEpsilon(t, 0.55e-6, silica.Alpha1, 1e-12)
	assert.Equal(t, 0.0, silica.Alpha2)
	assert.Equal(t, 0.0, silica.Alpha3)
	assert.Equal(t, 0.95, silica.QualityFactor)

	copper, err := c.Get("copper_ofhc")
	require.NoError(t, err)
	assert.Empty(t, copper.Name)
	assert.Equal(t, "copper_ofhc", copper.DisplayName())
	assert.Equal(t, Electronic, copper.Category)
	assert.Equal(t, 1.0, copper.QualityFactor, "quality factor defaults to 1")
	assert.Equal(t, 8960.0, copper.Density)
}

func TestLoadCUE_Directory(t *testing.T) {
	dir := t.TempDir()
	extra, err := os.ReadFile(filepath.Join("testdata", "extra.cue"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cue"), extra, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	entries, err := LoadCUE(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoadCUE_EmptyDirectory(t *testing.T) {
	_, err := LoadCUE(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files found")
}

func TestLoadCUE_MissingPath(t *testing.T) {
	_, err := LoadCUE(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
}

func TestDecodeCUE_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "unknown category",
			src: `material: bad: {
	category: "plastic"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	elastic_modulus: 1e9
	range: {min: 4, max: 300}
}`,
		},
		{
			name: "inverted range",
			src: `material: bad: {
	category: "structural"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	elastic_modulus: 1e9
	range: {min: 400, max: 300}
}`,
		},
		{
			name: "quality factor above one",
			src: `material: bad: {
	category: "structural"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	elastic_modulus: 1e9
	range: {min: 4, max: 300}
	quality_factor: 1.5
}`,
		},
		{
			name: "missing modulus",
			src: `material: bad: {
	category: "structural"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	range: {min: 4, max: 300}
}`,
		},
		{
			name: "negative uncertainty",
			src: `material: bad: {
	category: "structural"
	alpha1: 1e-6
	alpha1_uncertainty: -1e-7
	elastic_modulus: 1e9
	range: {min: 4, max: 300}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := DecodeCUE([]byte(tt.src), "bad.cue")
			require.Error(t, err)
			assert.Empty(t, entries)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "want *CompileError, got %T: %v", err, err)
			assert.Equal(t, "bad", ce.Material)
		})
	}
}

func TestDecodeCUE_CollectsErrorsPerEntry(t *testing.T) {
	src := `
material: good: {
	category: "structural"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	elastic_modulus: 1e9
	range: {min: 4, max: 300}
}
material: bad1: {
	category: "plastic"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	elastic_modulus: 1e9
	range: {min: 4, max: 300}
}
material: bad2: {
	category: "optical"
	alpha1: 1e-6
	alpha1_uncertainty: 1e-7
	range: {min: 4, max: 300}
}
`
	entries, err := DecodeCUE([]byte(src), "mixed.cue")
	require.Error(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].ID)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)
}

func TestDecodeCUE_NoMaterialStruct(t *testing.T) {
	_, err := DecodeCUE([]byte(`other: 1`), "empty.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no materials declared")
}

func TestDecodeCUE_SyntaxError(t *testing.T) {
	_, err := DecodeCUE([]byte(`material: {`), "broken.cue")
	require.Error(t, err)
}

func TestCompileError_Format(t *testing.T) {
	e := &CompileError{Material: "invar", Field: "alpha1", Message: "not a number"}
	assert.Equal(t, "invar.alpha1: not a number", e.Error())
}

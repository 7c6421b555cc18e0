package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_SaveAndReload(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")
	extra := filepath.Join("testdata", "catalogs", "lab.yaml")

	stdout, _, err := execute(t, "export", library, "--name", "lab", "--catalog", extra)
	require.NoError(t, err)
	assert.Contains(t, stdout, `✓ Saved catalog "lab"`)
	assert.Contains(t, stdout, "(7 materials, revision 1)")

	stdout, _, err = execute(t, "expand", "fused_silica", "0.1", "293.16",
		"--catalog", library, "--catalog-name", "lab", "--format", "json")
	require.NoError(t, err)

	var r ExpandResult
	decodeData(t, stdout, &r)
	assert.Equal(t, "Fused Silica", r.Name)
	assert.InDelta(t, 5.5e-10, r.AbsoluteExpansion, 1e-12)
}

func TestExport_ReplaceBumpsRevision(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")

	_, _, err := execute(t, "export", library)
	require.NoError(t, err)

	stdout, _, err := execute(t, "export", library, "--format", "json")
	require.NoError(t, err)

	var r ExportResult
	decodeData(t, stdout, &r)
	assert.Equal(t, library, r.Library)
	assert.Equal(t, "default", r.Catalog.Name)
	assert.Equal(t, 6, r.Catalog.Entries)
	assert.Equal(t, int64(2), r.Catalog.Revision)
}

func TestExport_List(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")

	stdout, _, err := execute(t, "export", library, "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No catalogs in")

	_, _, err = execute(t, "export", library, "--name", "reference")
	require.NoError(t, err)
	_, _, err = execute(t, "export", library, "--name", "lab",
		"--catalog", filepath.Join("testdata", "catalogs", "lab.cue"))
	require.NoError(t, err)

	stdout, _, err = execute(t, "export", library, "--list", "--format", "json")
	require.NoError(t, err)

	var listing LibraryListing
	decodeData(t, stdout, &listing)
	require.Len(t, listing.Catalogs, 2)
	assert.Equal(t, "lab", listing.Catalogs[0].Name)
	assert.Equal(t, 7, listing.Catalogs[0].Entries)
	assert.Equal(t, "reference", listing.Catalogs[1].Name)
	assert.Equal(t, 6, listing.Catalogs[1].Entries)
	assert.NotEqual(t, listing.Catalogs[0].Fingerprint, listing.Catalogs[1].Fingerprint)
}

func TestExport_MissingLibraryCatalog(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")
	_, _, err := execute(t, "export", library)
	require.NoError(t, err)

	stdout, _, err := execute(t, "materials", "--catalog", library, "--catalog-name", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeNotFound)
}

func TestExport_Delete(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")
	_, _, err := execute(t, "export", library, "--name", "scratch")
	require.NoError(t, err)

	stdout, _, err := execute(t, "export", library, "--name", "scratch", "--delete")
	require.NoError(t, err)
	assert.Contains(t, stdout, `✓ Deleted catalog "scratch"`)

	stdout, _, err = execute(t, "export", library, "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No catalogs in")

	stdout, _, err = execute(t, "export", library, "--name", "scratch", "--delete", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeNotFound)
}

func TestExport_ListAndDeleteExclusive(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")
	_, _, err := execute(t, "export", library, "--list", "--delete")
	require.Error(t, err)
}

func TestExport_ListShortFingerprint(t *testing.T) {
	library := filepath.Join(t.TempDir(), "lab.db")
	_, _, err := execute(t, "export", library, "--name", "edited")
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", library)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE catalogs SET fingerprint = 'abc' WHERE name = 'edited'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	stdout, _, err := execute(t, "export", library, "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "edited")
	assert.Contains(t, stdout, "abc")
}

func TestShortFingerprint(t *testing.T) {
	assert.Equal(t, "", shortFingerprint(""))
	assert.Equal(t, "abc", shortFingerprint("abc"))
	assert.Equal(t, "0123456789ab", shortFingerprint("0123456789abcdef"))
}

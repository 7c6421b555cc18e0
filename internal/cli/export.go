package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/material"
	"github.com/roach88/thermex/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Name   string // catalog name in the library
	List   bool   // list saved catalogs instead of exporting
	Delete bool   // delete the named catalog instead of exporting
}

// ExportResult describes a saved catalog.
type ExportResult struct {
	Library string            `json:"library"`
	Catalog store.CatalogInfo `json:"catalog"`
}

// WriteText renders the export outcome.
func (r ExportResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ Saved catalog %q to %s (%d materials, revision %d)\n",
		r.Catalog.Name, r.Library, r.Catalog.Entries, r.Catalog.Revision)
	return err
}

// LibraryListing lists the catalogs in a library.
type LibraryListing struct {
	Library  string              `json:"library"`
	Catalogs []store.CatalogInfo `json:"catalogs"`
}

// WriteText renders the listing.
func (l LibraryListing) WriteText(w io.Writer) error {
	if len(l.Catalogs) == 0 {
		_, err := fmt.Fprintf(w, "No catalogs in %s.\n", l.Library)
		return err
	}
	for _, c := range l.Catalogs {
		fmt.Fprintf(w, "%-20s %3d materials  rev %-3d %s\n", c.Name, c.Entries, c.Revision, shortFingerprint(c.Fingerprint))
	}
	return nil
}

// DeleteResult reports a removed catalog.
type DeleteResult struct {
	Library string `json:"library"`
	Name    string `json:"deleted"`
}

// WriteText renders the deletion.
func (r DeleteResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "✓ Deleted catalog %q from %s\n", r.Name, r.Library)
	return err
}

// shortFingerprint abbreviates a fingerprint for listings.
func shortFingerprint(fp string) string {
	if len(fp) < 12 {
		return fp
	}
	return fp[:12]
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <library.db>",
		Short: "Save the catalog to a SQLite library",
		Long: `Save the current catalog (reference materials plus --catalog) into a
SQLite catalog library under a name. Saving under an existing name
replaces that catalog and bumps its revision. --list shows the saved
catalogs and --delete removes the one named by --name.

Examples:
  thermex export lab.db --catalog lab.cue --name lab
  thermex export lab.db --list
  thermex export lab.db --name lab --delete
  thermex expand invar 0.1 300 --catalog lab.db --catalog-name lab`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "default", "catalog name in the library")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list saved catalogs")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "delete the catalog saved under --name")
	cmd.MarkFlagsMutuallyExclusive("list", "delete")

	return cmd
}

func runExport(opts *ExportOptions, library string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	var cat *material.Catalog
	if !opts.List && !opts.Delete {
		c, err := loadCatalog(ctx, opts.RootOptions)
		if err != nil {
			return catalogFailure(formatter, err)
		}
		cat = c
	}

	st, err := store.Open(library)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	if opts.List {
		infos, err := st.ListCatalogs(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err)
		}
		return formatter.Success(LibraryListing{Library: library, Catalogs: infos})
	}

	if opts.Delete {
		if err := st.DeleteCatalog(ctx, opts.Name); err != nil {
			if store.IsNotFound(err) {
				return formatter.Fail(ExitCommandError, ErrCodeNotFound, err)
			}
			return formatter.Fail(ExitCommandError, ErrCodeStore, err)
		}
		return formatter.Success(DeleteResult{Library: library, Name: opts.Name})
	}

	info, err := st.SaveCatalog(ctx, opts.Name, cat)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}

	formatter.VerboseLog("fingerprint %s", info.Fingerprint)
	return formatter.Success(ExportResult{Library: library, Catalog: info})
}

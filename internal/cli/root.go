package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/expansion"
	"github.com/roach88/thermex/internal/material"
	"github.com/roach88/thermex/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose              bool
	Format               string  // "json" | "text"
	Catalog              string  // CUE/YAML file or directory, or SQLite library
	CatalogName          string  // catalog name inside a SQLite library
	ReferenceTemperature float64 // K
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// sqliteExts are the extensions treated as a SQLite catalog library.
var sqliteExts = []string{".db", ".sqlite", ".sqlite3"}

// NewRootCommand creates the root command for the thermex CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "thermex",
		Short: "thermex - thermal expansion calculator",
		Long: `Compute temperature-dependent dimensional change, thermal stress and
uncertainty for precision structural and optical materials.

The built-in reference catalog holds zerodur, invar, silicon, ule_glass,
titanium_6al4v and aluminum_6061. Use --catalog to add or override
materials from a CUE or YAML file, or from a saved SQLite library.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.Catalog, "catalog", "", "extra catalog: .cue/.yaml file or directory, or .db library")
	pf.StringVar(&opts.CatalogName, "catalog-name", "default", "catalog name within a .db library")
	pf.Float64Var(&opts.ReferenceTemperature, "reference", expansion.DefaultReferenceTemperature, "reference temperature in K")

	cmd.AddCommand(NewMaterialsCommand(opts))
	cmd.AddCommand(NewExpandCommand(opts))
	cmd.AddCommand(NewFnCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// newLogger returns a text logger on w, at debug level with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadCatalog returns the reference catalog merged with --catalog, if set.
func loadCatalog(ctx context.Context, opts *RootOptions) (*material.Catalog, error) {
	base := material.Reference()
	if opts.Catalog == "" {
		return base, nil
	}

	if _, err := os.Stat(opts.Catalog); err != nil {
		return nil, fmt.Errorf("catalog not found: %w", err)
	}

	if isLibrary(opts.Catalog) {
		st, err := store.Open(opts.Catalog)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		saved, err := st.LoadCatalog(ctx, opts.CatalogName)
		if err != nil {
			return nil, err
		}
		return material.Merge(base, saved.Entries()...)
	}

	extra, err := material.LoadFile(opts.Catalog)
	if err != nil {
		return nil, err
	}
	return material.Merge(base, extra...)
}

// newEvaluator loads the catalog and builds an evaluator logging to the
// command's stderr.
func newEvaluator(opts *RootOptions, cmd *cobra.Command) (*expansion.Evaluator, *material.Catalog, error) {
	cat, err := loadCatalog(cmd.Context(), opts)
	if err != nil {
		return nil, nil, err
	}
	cfg := expansion.DefaultConfig()
	cfg.ReferenceTemperature = opts.ReferenceTemperature
	cfg.Logger = newLogger(opts, cmd.ErrOrStderr())
	return expansion.New(cat, cfg), cat, nil
}

func isLibrary(path string) bool {
	return slices.Contains(sqliteExts, strings.ToLower(filepath.Ext(path)))
}

// parseFloatArg parses a numeric positional argument.
func parseFloatArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

// evaluationFailure maps an evaluator error to an error code and reports it.
func evaluationFailure(f *OutputFormatter, err error) error {
	switch {
	case material.IsUnknownMaterial(err):
		return f.Fail(ExitCommandError, ErrCodeUnknownMaterial, err)
	case expansion.IsInputError(err), expansion.IsDivisionUndefined(err):
		return f.Fail(ExitCommandError, ErrCodeInvalidInput, err)
	default:
		return f.Fail(ExitCommandError, ErrCodeGeneric, err)
	}
}

// catalogFailure reports a catalog load error.
func catalogFailure(f *OutputFormatter, err error) error {
	if store.IsNotFound(err) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, err)
	}
	return f.Fail(ExitCommandError, ErrCodeCatalogLoad, err)
}

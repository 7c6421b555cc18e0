package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/material"
	"github.com/roach88/thermex/internal/store"
)

// ValidationIssue is one problem found in a catalog source.
type ValidationIssue struct {
	Material string `json:"material,omitempty"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	Line     int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Materials   int               `json:"materials,omitempty"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Errors      []ValidationIssue `json:"errors,omitempty"`
}

// WriteText renders the validation outcome.
func (r ValidationResult) WriteText(w io.Writer) error {
	if r.Valid {
		_, err := fmt.Fprintf(w, "✓ Catalog valid (%d materials)\n", r.Materials)
		return err
	}

	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, issue := range r.Errors {
		if issue.Line > 0 {
			fmt.Fprintf(w, "line %d\n", issue.Line)
		}
		where := issue.Field
		if issue.Material != "" {
			where = issue.Material + "." + issue.Field
		}
		fmt.Fprintf(w, "  %s: %s: %s\n\n", issue.Code, where, issue.Message)
	}
	return nil
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Validate a catalog without evaluating",
		Long: `Validate a CUE or YAML catalog file (or directory of CUE files), or a
catalog saved in a SQLite library (--catalog-name selects it).

All problems are reported, not just the first. The catalog is checked on
its own, without the built-in reference materials.

Exit codes:
  0 - Catalog valid
  1 - Validation errors found
  2 - Command error (file not found, unreadable source)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if _, err := os.Stat(path); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("catalog not found: %s", path))
	}

	var (
		cat *material.Catalog
		err error
	)
	if isLibrary(path) {
		cat, err = validateLibrary(cmd, path, opts.CatalogName)
	} else {
		cat, err = validateFile(path)
	}

	issues, ok := validationIssues(err)
	if !ok {
		return catalogFailure(formatter, err)
	}
	if len(issues) > 0 {
		result := ValidationResult{Valid: false, Errors: issues}
		if opts.Format == "json" {
			if err := formatter.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: issues[0].Code, Message: issues[0].Message},
			}); err != nil {
				return err
			}
		} else if err := result.WriteText(formatter.Writer); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	formatter.VerboseLog("fingerprint %s", cat.Fingerprint())
	return formatter.Success(ValidationResult{
		Valid:       true,
		Materials:   cat.Len(),
		Fingerprint: cat.Fingerprint(),
	})
}

func validateFile(path string) (*material.Catalog, error) {
	entries, err := material.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return material.NewCatalog(entries...)
}

func validateLibrary(cmd *cobra.Command, path, name string) (*material.Catalog, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.LoadCatalog(cmd.Context(), name)
}

// validationIssues converts catalog and schema errors into issues.
// ok is false when err contains anything else (I/O, syntax, store errors).
func validationIssues(err error) (issues []ValidationIssue, ok bool) {
	if err == nil {
		return nil, true
	}

	var catErr *material.CatalogError
	if errors.As(err, &catErr) {
		for _, ve := range catErr.Errors {
			issues = append(issues, ValidationIssue{
				Material: ve.Material,
				Field:    ve.Field,
				Message:  ve.Message,
				Code:     ve.Code,
			})
		}
		return issues, true
	}

	errs := []error{err}
	if joined, isJoined := err.(interface{ Unwrap() []error }); isJoined {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var ce *material.CompileError
		if !errors.As(e, &ce) || ce.Material == "" {
			return nil, false
		}
		issue := ValidationIssue{
			Material: ce.Material,
			Field:    ce.Field,
			Message:  ce.Message,
			Code:     material.ErrSchema,
		}
		if ce.Pos.IsValid() {
			issue.Line = ce.Pos.Line()
		}
		issues = append(issues, issue)
	}
	return issues, true
}

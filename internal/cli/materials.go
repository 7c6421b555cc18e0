package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/material"
)

// MaterialsOptions holds flags for the materials command.
type MaterialsOptions struct {
	*RootOptions
	Category string // filter by category
}

// MaterialsResult lists catalog entries.
type MaterialsResult struct {
	Fingerprint string                  `json:"fingerprint"`
	Materials   []material.Coefficients `json:"materials"`
}

// WriteText renders the listing as a fixed-width table.
func (r MaterialsResult) WriteText(w io.Writer) error {
	const row = "%-15s %-10s %-20s %-9s %-9s %-9s %-10s %s\n"

	fmt.Fprintf(w, row, "ID", "NAME", "CATEGORY", "ALPHA1", "ALPHA2", "ALPHA3", "E_PA", "RANGE_K")
	for _, m := range r.Materials {
		fmt.Fprintf(w, row,
			m.ID,
			m.DisplayName(),
			m.Category,
			fmt.Sprintf("%g", m.Alpha1),
			fmt.Sprintf("%g", m.Alpha2),
			fmt.Sprintf("%g", m.Alpha3),
			fmt.Sprintf("%g", m.ElasticModulus),
			fmt.Sprintf("[%g, %g]", m.Range.Min, m.Range.Max),
		)
	}
	_, err := fmt.Fprintf(w, "%d materials\n", len(r.Materials))
	return err
}

// NewMaterialsCommand creates the materials command.
func NewMaterialsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MaterialsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List catalog materials",
		Long: `List the materials in the catalog with their expansion coefficients,
elastic modulus and validated temperature range.

Examples:
  thermex materials
  thermex materials --category optical
  thermex materials --catalog lab.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterials(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only list this category")

	return cmd
}

func runMaterials(opts *MaterialsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var filter material.Category
	if opts.Category != "" {
		c, err := material.ParseCategory(opts.Category)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidArgument, err)
		}
		filter = c
	}

	cat, err := loadCatalog(cmd.Context(), opts.RootOptions)
	if err != nil {
		return catalogFailure(formatter, err)
	}

	result := MaterialsResult{
		Fingerprint: cat.Fingerprint(),
		Materials:   []material.Coefficients{},
	}
	for _, m := range cat.Entries() {
		if opts.Category != "" && m.Category != filter {
			continue
		}
		result.Materials = append(result.Materials, m)
	}

	formatter.VerboseLog("catalog fingerprint %s", result.Fingerprint)
	return formatter.Success(result)
}

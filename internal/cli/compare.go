package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/expansion"
)

// DefaultCompareMaterials are compared when no ids are given.
var DefaultCompareMaterials = []string{"zerodur", "invar", "silicon", "ule_glass"}

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Length float64 // m
	Delta  float64 // K above the reference temperature
}

// CompareResult holds one evaluation per material.
type CompareResult struct {
	Length          float64            `json:"length"`
	DeltaT          float64            `json:"delta_temperature"`
	TargetStability float64            `json:"target_stability"`
	Results         []expansion.Result `json:"results"`
}

// WriteText renders the comparison table; expansions in nm.
func (r CompareResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "length %g m, ΔT %g K (target stability %g K)\n", r.Length, r.DeltaT, r.TargetStability)
	fmt.Fprintf(w, "%-15s %16s %16s %14s\n", "MATERIAL", "EXPANSION_NM", "UNCERTAINTY_NM", "STRESS_PA")
	for _, res := range r.Results {
		fmt.Fprintf(w, "%-15s %16.6f %16.6f %14.3f\n",
			res.Material, res.AbsoluteExpansion*1e9, res.AbsoluteUncertainty*1e9, res.ThermalStress)
	}
	return nil
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare [material...]",
		Short: "Compare materials at the same temperature change",
		Long: `Evaluate several materials at reference + delta and tabulate the
expansion, its uncertainty and the thermal stress.

With no materials, compares zerodur, invar, silicon and ule_glass.

Examples:
  thermex compare
  thermex compare invar aluminum_6061 --length 0.5 --delta 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Length, "length", 0.1, "nominal length (m)")
	cmd.Flags().Float64Var(&opts.Delta, "delta", expansion.DefaultTargetStability, "temperature change above reference (K)")

	return cmd
}

func runCompare(opts *CompareOptions, ids []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if len(ids) == 0 {
		ids = DefaultCompareMaterials
	}

	ev, _, err := newEvaluator(opts.RootOptions, cmd)
	if err != nil {
		return catalogFailure(formatter, err)
	}

	results, err := ev.Compare(ids, opts.Length, opts.Delta)
	if err != nil {
		return evaluationFailure(formatter, err)
	}

	return formatter.Success(CompareResult{
		Length:          opts.Length,
		DeltaT:          opts.Delta,
		TargetStability: ev.TargetStability(),
		Results:         results,
	})
}

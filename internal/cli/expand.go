package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/thermex/internal/expansion"
)

// ExpandOptions holds flags for the expand command.
type ExpandOptions struct {
	*RootOptions
	Reference float64 // per-call T_ref, used when --ref is given
	refSet    bool
}

// ExpandResult is an evaluation plus its range advisory.
type ExpandResult struct {
	expansion.Result
	Name            string `json:"name"`
	Advisory        string `json:"advisory,omitempty"`
	WithinStability bool   `json:"within_stability"`
}

// WriteText renders the result for humans; lengths in nm.
func (r ExpandResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "material:              %s (%s)\n", r.Material, r.Name)
	fmt.Fprintf(w, "nominal length:        %g m\n", r.NominalLength)
	fmt.Fprintf(w, "temperature:           %g K (reference %g K, ΔT %g K)\n",
		r.Temperature, r.ReferenceTemperature, r.DeltaT)
	fmt.Fprintf(w, "expansion factor:      %.15f\n", r.ExpansionFactor)
	fmt.Fprintf(w, "absolute expansion:    %.6f nm\n", r.AbsoluteExpansion*1e9)
	fmt.Fprintf(w, "relative expansion:    %g\n", r.RelativeExpansion)
	fmt.Fprintf(w, "thermal stress:        %g Pa\n", r.ThermalStress)
	fmt.Fprintf(w, "uncertainty:           ±%.6f nm (relative %g)\n",
		r.AbsoluteUncertainty*1e9, r.RelativeUncertainty)
	if r.Advisory != "" {
		fmt.Fprintf(w, "advisory:              %s\n", r.Advisory)
	}
	_, err := fmt.Fprintf(w, "within stability:      %t\n", r.WithinStability)
	return err
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "expand <material> <length-m> <temperature-K>",
		Short: "Evaluate thermal expansion of a part",
		Long: `Evaluate the expansion, thermal stress and uncertainty of a part of the
given nominal length (m) at the given temperature (K).

A temperature outside the material's validated range is evaluated anyway
and reported as an advisory.

Examples:
  thermex expand zerodur 0.1 293.25
  thermex expand invar 0.1 293.16 --ref 293.15 --format json`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.refSet = cmd.Flags().Changed("ref")
			return runExpand(opts, args, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Reference, "ref", expansion.DefaultReferenceTemperature, "reference temperature for this evaluation (K)")

	return cmd
}

func runExpand(opts *ExpandOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	length, err := parseFloatArg("length", args[1])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgument, err)
	}
	temperature, err := parseFloatArg("temperature", args[2])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgument, err)
	}

	ev, cat, err := newEvaluator(opts.RootOptions, cmd)
	if err != nil {
		return catalogFailure(formatter, err)
	}

	reference := ev.ReferenceTemperature()
	if opts.refSet {
		reference = opts.Reference
	}

	r, err := ev.EvaluateAt(args[0], length, temperature, reference)
	if err != nil {
		return evaluationFailure(formatter, err)
	}

	m, _ := cat.Get(args[0])
	advisory, _ := ev.Advise(args[0], temperature)

	return formatter.Success(ExpandResult{
		Result:          r,
		Name:            m.DisplayName(),
		Advisory:        advisory,
		WithinStability: ev.WithinStability(r),
	})
}

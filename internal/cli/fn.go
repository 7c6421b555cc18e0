package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// FnResult is a thermal function value.
type FnResult struct {
	Material             string  `json:"material"`
	Temperature          float64 `json:"temperature"`
	ReferenceTemperature float64 `json:"reference_temperature"`
	Value                float64 `json:"thermal_function"`
}

// WriteText renders the value.
func (r FnResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "f(%s, %g K) = %.15f (reference %g K, quadratic)\n",
		r.Material, r.Temperature, r.Value, r.ReferenceTemperature)
	return err
}

// NewFnCommand creates the fn command.
func NewFnCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fn <material> <temperature-K>",
		Short: "Evaluate the thermal function 1 + α₁ΔT + α₂ΔT²",
		Long: `Evaluate the quadratic thermal function of a material at a temperature,
relative to the reference temperature (--reference).

The cubic coefficient is not used; for materials with a nonzero α₃ the
value differs from the expansion factor reported by expand.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFn(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runFn(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	temperature, err := parseFloatArg("temperature", args[1])
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgument, err)
	}

	ev, _, err := newEvaluator(opts, cmd)
	if err != nil {
		return catalogFailure(formatter, err)
	}

	f, err := ev.ThermalFunction(args[0], temperature)
	if err != nil {
		return evaluationFailure(formatter, err)
	}

	return formatter.Success(FnResult{
		Material:             args[0],
		Temperature:          temperature,
		ReferenceTemperature: ev.ReferenceTemperature(),
		Value:                f,
	})
}

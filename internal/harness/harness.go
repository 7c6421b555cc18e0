package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/thermex/internal/expansion"
	"github.com/roach88/thermex/internal/material"
)

// Error kinds reported in StepOutcome.ErrorKind and matched by
// ExpectClause.Error.
const (
	KindUnknownMaterial   = "unknown_material"
	KindDivisionUndefined = "division_undefined"
	KindInvalidInput      = "invalid_input"
	KindOther             = "error"
)

// Harness executes scenario steps against one evaluator.
type Harness struct {
	evaluator *expansion.Evaluator
	logger    *slog.Logger
}

type options struct {
	runIDs RunIDGenerator
	logger *slog.Logger
	base   *material.Catalog
}

// Option configures Run.
type Option func(*options)

// WithRunIDGenerator sets the run id source. Defaults to UUIDv7Generator.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(o *options) { o.runIDs = gen }
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCatalog sets the base catalog that a scenario's own catalog is
// merged over. Defaults to material.Reference().
func WithCatalog(cat *material.Catalog) Option {
	return func(o *options) { o.base = cat }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Build the catalog (base, merged with scenario.Catalog if set)
// 2. Create an evaluator logging under a fresh run id
// 3. Execute steps in order, checking expect clauses
// 4. Evaluate assertions across step outcomes
//
// An error is returned only when the scenario cannot be set up. Step and
// assertion failures are reported in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{
		runIDs: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		base:   material.Reference(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cat := o.base
	if scenario.Catalog != "" {
		extra, err := material.LoadFile(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario catalog: %w", err)
		}
		if cat, err = material.Merge(o.base, extra...); err != nil {
			return nil, fmt.Errorf("failed to merge scenario catalog: %w", err)
		}
	}

	runID := o.runIDs.Generate()
	logger := o.logger.With("run_id", runID, "scenario", scenario.Name)

	cfg := expansion.DefaultConfig()
	cfg.Logger = logger
	if scenario.ReferenceTemperature != nil {
		cfg.ReferenceTemperature = *scenario.ReferenceTemperature
	}

	h := &Harness{
		evaluator: expansion.New(cat, cfg),
		logger:    logger,
	}

	result := NewResult(scenario.Name, runID)
	for _, step := range scenario.Steps {
		result.AddStep(h.executeStep(step))
	}

	result.Assertions = len(scenario.Assertions)
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	logger.Info("scenario finished", "pass", result.Pass, "steps", len(result.Steps))
	return result, nil
}

// executeStep runs one step and checks its expect clause.
func (h *Harness) executeStep(step Step) StepOutcome {
	out := StepOutcome{
		Name:     step.Name,
		Op:       step.Op,
		Material: step.Material,
		Pass:     true,
	}

	reference := h.evaluator.ReferenceTemperature()
	if step.Reference != nil {
		reference = *step.Reference
	}

	var err error
	switch step.Op {
	case OpEvaluate:
		var r expansion.Result
		r, err = h.evaluator.EvaluateAt(step.Material, step.Length, step.Temperature, reference)
		if err == nil {
			out.Values = resultValues(r)
		}
	case OpThermalFunction:
		var f float64
		f, err = h.evaluator.ThermalFunctionAt(step.Material, step.Temperature, reference)
		if err == nil {
			out.Values = map[string]float64{"thermal_function": f}
		}
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}

	if err != nil {
		out.ErrorKind = ErrorKind(err)
		out.Error = err.Error()
	} else if advisory, aerr := h.evaluator.Advise(step.Material, step.Temperature); aerr == nil {
		out.Advisory = advisory
	}

	h.logger.Debug("step executed", "step", step.Name, "op", step.Op, "error_kind", out.ErrorKind)

	checkExpect(&out, step.Expect)
	return out
}

// checkExpect compares a step outcome against its expect clause.
func checkExpect(out *StepOutcome, expect *ExpectClause) {
	if expect == nil {
		if out.ErrorKind != "" {
			out.fail(fmt.Sprintf("unexpected error: %s", out.Error))
		}
		return
	}

	if expect.Error != "" {
		if out.ErrorKind != expect.Error {
			out.fail(fmt.Sprintf("expected error %s, got %s", expect.Error, describeKind(out.ErrorKind)))
		}
		return
	}

	if out.ErrorKind != "" {
		out.fail(fmt.Sprintf("unexpected error: %s", out.Error))
		return
	}

	for _, field := range sortedKeys(expect.Fields) {
		want := expect.Fields[field]
		got, ok := out.Values[field]
		if !ok {
			out.fail(fmt.Sprintf("unknown field %q", field))
			continue
		}
		if !within(got, want.Value, want.Tolerance) {
			out.fail(fmt.Sprintf("%s: expected %g ± %g, got %g", field, want.Value, want.Tolerance, got))
		}
	}

	if expect.Advisory != nil && *expect.Advisory != (out.Advisory != "") {
		if *expect.Advisory {
			out.fail("expected range advisory, got none")
		} else {
			out.fail(fmt.Sprintf("unexpected range advisory: %s", out.Advisory))
		}
	}
}

// ErrorKind classifies an evaluator error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case material.IsUnknownMaterial(err):
		return KindUnknownMaterial
	case expansion.IsDivisionUndefined(err):
		return KindDivisionUndefined
	case expansion.IsInputError(err):
		return KindInvalidInput
	default:
		return KindOther
	}
}

func describeKind(kind string) string {
	if kind == "" {
		return "success"
	}
	return kind
}

// resultValues flattens a result into named values. Names match the
// JSON field names of expansion.Result.
func resultValues(r expansion.Result) map[string]float64 {
	return map[string]float64{
		"length_nominal":        r.NominalLength,
		"temperature":           r.Temperature,
		"reference_temperature": r.ReferenceTemperature,
		"delta_temperature":     r.DeltaT,
		"expansion_factor":      r.ExpansionFactor,
		"length_expanded":       r.ExpandedLength,
		"absolute_expansion":    r.AbsoluteExpansion,
		"relative_expansion":    r.RelativeExpansion,
		"thermal_strain":        r.ThermalStrain,
		"thermal_stress":        r.ThermalStress,
		"absolute_uncertainty":  r.AbsoluteUncertainty,
		"relative_uncertainty":  r.RelativeUncertainty,
		"alpha1":                r.CoefficientsUsed.Alpha1,
		"alpha2":                r.CoefficientsUsed.Alpha2,
		"alpha3":                r.CoefficientsUsed.Alpha3,
	}
}

// within reports |got - want| <= tol. A zero tolerance demands equality.
func within(got, want, tol float64) bool {
	if tol == 0 {
		return got == want
	}
	return math.Abs(got-want) <= tol
}

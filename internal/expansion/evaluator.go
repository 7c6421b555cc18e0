package expansion

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/roach88/thermex/internal/material"
)

// Lookup resolves a material identifier to its coefficients.
// *material.Catalog satisfies it.
type Lookup interface {
	Get(id string) (material.Coefficients, error)
}

// Evaluator computes expansion results against a catalog.
//
// Thread-safety: Evaluator has no mutable state and is safe for concurrent
// use provided the Lookup is (a *material.Catalog always is).
type Evaluator struct {
	catalog   Lookup
	reference float64
	stability float64
	logger    *slog.Logger
}

// New creates an Evaluator over catalog.
func New(catalog Lookup, cfg Config) *Evaluator {
	cfg = cfg.withDefaults()
	return &Evaluator{
		catalog:   catalog,
		reference: cfg.ReferenceTemperature,
		stability: cfg.TargetStability,
		logger:    cfg.Logger,
	}
}

// ReferenceTemperature returns the default T_ref in kelvin.
func (e *Evaluator) ReferenceTemperature() float64 {
	return e.reference
}

// TargetStability returns the advisory stability target in kelvin.
func (e *Evaluator) TargetStability() float64 {
	return e.stability
}

// Evaluate computes the expansion of a nominal length of material id at
// temperature, relative to the configured reference temperature.
func (e *Evaluator) Evaluate(id string, length, temperature float64) (Result, error) {
	return e.EvaluateAt(id, length, temperature, e.reference)
}

// EvaluateAt is Evaluate with an explicit reference temperature.
//
// Errors:
//   - *material.UnknownMaterialError if id is not in the catalog
//   - *InputError if length, temperature or reference is NaN or infinite
//   - *DivisionUndefinedError if length is exactly zero
//
// A temperature outside the material's validated range is not an error:
// the result is computed by extrapolation and a warning is logged.
// Negative lengths are accepted as given.
func (e *Evaluator) EvaluateAt(id string, length, temperature, reference float64) (Result, error) {
	m, err := e.catalog.Get(id)
	if err != nil {
		return Result{}, err
	}
	if err := checkFinite("nominal_length", length); err != nil {
		return Result{}, err
	}
	if err := checkTemperatures(temperature, reference); err != nil {
		return Result{}, err
	}
	if length == 0 {
		return Result{}, &DivisionUndefinedError{Material: id}
	}

	e.adviseRange(m, temperature)

	dT := temperature - reference
	f := polynomial(m.Alpha1, m.Alpha2, m.Alpha3, dT)

	expanded := length * f
	absolute := expanded - length

	relUnc := m.Alpha1Uncertainty * math.Abs(dT)
	strain := f - 1

	r := Result{
		Material:             id,
		NominalLength:        length,
		Temperature:          temperature,
		ReferenceTemperature: reference,
		DeltaT:               dT,
		ExpansionFactor:      f,
		ExpandedLength:       expanded,
		AbsoluteExpansion:    absolute,
		RelativeExpansion:    absolute / length,
		ThermalStrain:        strain,
		ThermalStress:        m.ElasticModulus * strain,
		AbsoluteUncertainty:  length * relUnc,
		RelativeUncertainty:  relUnc,
		CoefficientsUsed: Coefficients{
			Alpha1: m.Alpha1,
			Alpha2: m.Alpha2,
			Alpha3: m.Alpha3,
		},
	}

	e.logger.Debug("thermal expansion",
		"material", id,
		"absolute_expansion_nm", absolute*1e9,
		"delta_t", dT,
	)

	return r, nil
}

// ThermalFunction returns 1 + α₁ΔT + α₂ΔT² at temperature, relative to
// the configured reference temperature.
func (e *Evaluator) ThermalFunction(id string, temperature float64) (float64, error) {
	return e.ThermalFunctionAt(id, temperature, e.reference)
}

// ThermalFunctionAt is ThermalFunction with an explicit reference
// temperature. The cubic coefficient is not used, so for materials with
// α₃ ≠ 0 the value differs from Result.ExpansionFactor.
//
// Errors: *material.UnknownMaterialError, or *InputError for a NaN or
// infinite temperature.
func (e *Evaluator) ThermalFunctionAt(id string, temperature, reference float64) (float64, error) {
	m, err := e.catalog.Get(id)
	if err != nil {
		return 0, err
	}
	if err := checkTemperatures(temperature, reference); err != nil {
		return 0, err
	}

	return polynomial(m.Alpha1, m.Alpha2, 0, temperature-reference), nil
}

// Advise returns the range advisory for evaluating id at temperature, or
// "" when the temperature is within the validated range.
func (e *Evaluator) Advise(id string, temperature float64) (string, error) {
	m, err := e.catalog.Get(id)
	if err != nil {
		return "", err
	}
	if m.InRange(temperature) {
		return "", nil
	}
	return rangeAdvisory(m, temperature), nil
}

// WithinStability reports whether the result's |ΔT| is within the
// advisory target stability.
func (e *Evaluator) WithinStability(r Result) bool {
	return math.Abs(r.DeltaT) <= e.stability
}

// Compare evaluates each material at reference + deltaT, in the order
// given. It stops at the first error.
func (e *Evaluator) Compare(ids []string, length, deltaT float64) ([]Result, error) {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		r, err := e.Evaluate(id, length, e.reference+deltaT)
		if err != nil {
			return nil, fmt.Errorf("compare %s: %w", id, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Evaluator) adviseRange(m material.Coefficients, temperature float64) {
	if m.InRange(temperature) {
		return
	}
	e.logger.Warn(rangeAdvisory(m, temperature),
		"material", m.ID,
		"temperature", temperature,
		"range_min", m.Range.Min,
		"range_max", m.Range.Max,
	)
}

func rangeAdvisory(m material.Coefficients, temperature float64) string {
	return fmt.Sprintf("temperature %.1f K outside valid range %s for %s", temperature, m.Range, m.ID)
}

// polynomial evaluates 1 + a1·x + a2·x² + a3·x³ in a fixed order, so that
// a zero a3 reproduces the quadratic form bit for bit.
func polynomial(a1, a2, a3, x float64) float64 {
	x2 := x * x
	x3 := x2 * x
	return 1 + a1*x + a2*x2 + a3*x3
}

func checkTemperatures(temperature, reference float64) error {
	if err := checkFinite("temperature", temperature); err != nil {
		return err
	}
	return checkFinite("reference_temperature", reference)
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v}
	}
	return nil
}

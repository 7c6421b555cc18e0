package material

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Validation error codes (E200-E299)
const (
	ErrSchema              = "E200" // CUE entry does not satisfy #Material
	ErrIDEmpty             = "E201" // identifier is required
	ErrIDNotNormalized     = "E202" // identifier must be NFC normalized
	ErrInvalidCategory     = "E203" // category outside the closed set
	ErrNonFinite           = "E204" // NaN or infinite physical quantity
	ErrInvalidRange        = "E205" // range min must be below max
	ErrQualityFactor       = "E206" // quality factor outside [0, 1]
	ErrNegativeUncertainty = "E207" // alpha1 uncertainty below zero
	ErrDuplicateID         = "E208" // identifier appears twice
)

// ValidationError represents a single coefficient validation problem.
type ValidationError struct {
	Material string `json:"material,omitempty"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Code     string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Material != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Material, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks one entry against the coefficient invariants.
// Returns all errors found (does not fail-fast).
func Validate(c Coefficients) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Material: c.ID,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Code:     code,
		})
	}

	if strings.TrimSpace(c.ID) == "" {
		add("id", ErrIDEmpty, "identifier is required and must be non-empty")
	} else if !norm.NFC.IsNormalString(c.ID) {
		add("id", ErrIDNotNormalized, "identifier %q is not NFC normalized", c.ID)
	}

	if !c.Category.Valid() {
		add("category", ErrInvalidCategory, "category is required (one of %v)", Categories)
	}

	quantities := []struct {
		field string
		value float64
	}{
		{"alpha1", c.Alpha1},
		{"alpha1_uncertainty", c.Alpha1Uncertainty},
		{"alpha2", c.Alpha2},
		{"alpha3", c.Alpha3},
		{"thermal_conductivity", c.ThermalConductivity},
		{"specific_heat", c.SpecificHeat},
		{"density", c.Density},
		{"elastic_modulus", c.ElasticModulus},
		{"range.min", c.Range.Min},
		{"range.max", c.Range.Max},
		{"quality_factor", c.QualityFactor},
	}
	for _, q := range quantities {
		if math.IsNaN(q.value) || math.IsInf(q.value, 0) {
			add(q.field, ErrNonFinite, "must be finite, got %v", q.value)
		}
	}

	if !(c.Range.Min < c.Range.Max) {
		add("range", ErrInvalidRange, "min (%g) must be less than max (%g)", c.Range.Min, c.Range.Max)
	}

	if !(c.QualityFactor >= 0 && c.QualityFactor <= 1) {
		add("quality_factor", ErrQualityFactor, "must be within [0, 1], got %g", c.QualityFactor)
	}

	if c.Alpha1Uncertainty < 0 {
		add("alpha1_uncertainty", ErrNegativeUncertainty, "must be non-negative, got %g", c.Alpha1Uncertainty)
	}

	return errs
}

// ValidateAll validates every entry and checks identifier uniqueness.
func ValidateAll(entries []Coefficients) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(entries))

	for i, c := range entries {
		errs = append(errs, Validate(c)...)
		if c.ID == "" {
			continue
		}
		if seen[c.ID] {
			errs = append(errs, ValidationError{
				Material: c.ID,
				Field:    fmt.Sprintf("entries[%d].id", i),
				Message:  fmt.Sprintf("duplicate identifier: %q", c.ID),
				Code:     ErrDuplicateID,
			})
		}
		seen[c.ID] = true
	}

	return errs
}

package material

import (
	"fmt"
)

// Category classifies a material. The set is closed.
type Category int

const (
	// categoryInvalid is the zero value; entries must set a category.
	categoryInvalid Category = iota
	UltraLowExpansion
	Structural
	Optical
	Electronic
)

// Categories lists every valid category in declaration order.
var Categories = []Category{UltraLowExpansion, Structural, Optical, Electronic}

// String returns the snake_case name used in catalogs and CLI output.
func (c Category) String() string {
	switch c {
	case UltraLowExpansion:
		return "ultra_low_expansion"
	case Structural:
		return "structural"
	case Optical:
		return "optical"
	case Electronic:
		return "electronic"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case UltraLowExpansion, Structural, Optical, Electronic:
		return true
	default:
		return false
	}
}

// ParseCategory converts a catalog name to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return categoryInvalid, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TemperatureRange is an inclusive validity interval in kelvin.
type TemperatureRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether t lies within [Min, Max].
func (r TemperatureRange) Contains(t float64) bool {
	return r.Min <= t && t <= r.Max
}

// String formats the range as "[min, max] K".
func (r TemperatureRange) String() string {
	return fmt.Sprintf("[%g, %g] K", r.Min, r.Max)
}

// Coefficients holds the physical properties of one material.
//
// Units: Alpha1 and Alpha1Uncertainty in K⁻¹, Alpha2 in K⁻², Alpha3 in K⁻³,
// ThermalConductivity in W/(m·K), SpecificHeat in J/(kg·K), Density in kg/m³,
// ElasticModulus in Pa.
//
// ThermalConductivity, SpecificHeat, Density and QualityFactor are carried
// for completeness; no evaluation reads them.
type Coefficients struct {
	ID                  string           `json:"id" yaml:"id"`
	Name                string           `json:"name" yaml:"name"`
	Category            Category         `json:"category" yaml:"category"`
	Alpha1              float64          `json:"alpha1" yaml:"alpha1"`
	Alpha1Uncertainty   float64          `json:"alpha1_uncertainty" yaml:"alpha1_uncertainty"`
	Alpha2              float64          `json:"alpha2" yaml:"alpha2"`
	Alpha3              float64          `json:"alpha3" yaml:"alpha3"`
	ThermalConductivity float64          `json:"thermal_conductivity" yaml:"thermal_conductivity"`
	SpecificHeat        float64          `json:"specific_heat" yaml:"specific_heat"`
	Density             float64          `json:"density" yaml:"density"`
	ElasticModulus      float64          `json:"elastic_modulus" yaml:"elastic_modulus"`
	Range               TemperatureRange `json:"range" yaml:"range"`
	QualityFactor       float64          `json:"quality_factor" yaml:"quality_factor"`
}

// InRange reports whether t lies within the validated temperature range.
func (c Coefficients) InRange(t float64) bool {
	return c.Range.Contains(t)
}

// DisplayName returns Name, or ID when no name is set.
func (c Coefficients) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

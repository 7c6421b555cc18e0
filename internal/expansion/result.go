package expansion

// Coefficients records the polynomial coefficients an evaluation used.
type Coefficients struct {
	Alpha1 float64 `json:"alpha1"`
	Alpha2 float64 `json:"alpha2"`
	Alpha3 float64 `json:"alpha3"`
}

// Result is the outcome of one expansion evaluation. Lengths are in the
// unit of the nominal length; temperatures in kelvin; stress in Pa.
type Result struct {
	Material             string  `json:"material"`
	NominalLength        float64 `json:"length_nominal"`
	Temperature          float64 `json:"temperature"`
	ReferenceTemperature float64 `json:"reference_temperature"`
	DeltaT               float64 `json:"delta_temperature"`

	ExpansionFactor   float64 `json:"expansion_factor"`
	ExpandedLength    float64 `json:"length_expanded"`
	AbsoluteExpansion float64 `json:"absolute_expansion"`
	RelativeExpansion float64 `json:"relative_expansion"`

	ThermalStrain float64 `json:"thermal_strain"`
	ThermalStress float64 `json:"thermal_stress"`

	AbsoluteUncertainty float64 `json:"absolute_uncertainty"`
	RelativeUncertainty float64 `json:"relative_uncertainty"`

	CoefficientsUsed Coefficients `json:"coefficients_used"`
}

package material

// Reference returns the built-in catalog of six precision materials.
// Values are load-bearing for reproducibility; change them only together
// with the tests that pin them.
func Reference() *Catalog {
	c, err := NewCatalog(ReferenceEntries()...)
	if err != nil {
		// The literals below are covered by TestReference_Valid.
		panic("material: reference catalog invalid: " + err.Error())
	}
	return c
}

// ReferenceEntries returns fresh copies of the reference coefficient sets.
func ReferenceEntries() []Coefficients {
	return []Coefficients{
		{
			ID:                  "zerodur",
			Name:                "Zerodur",
			Category:            UltraLowExpansion,
			Alpha1:              5e-9,
			Alpha1Uncertainty:   0.5e-9,
			Alpha2:              1e-12,
			Alpha3:              0,
			ThermalConductivity: 1.46,
			SpecificHeat:        808,
			Density:             2530,
			ElasticModulus:      91e9,
			Range:               TemperatureRange{Min: 4, Max: 573},
			QualityFactor:       0.99,
		},
		{
			ID:                  "invar",
			Name:                "Invar",
			Category:            Structural,
			Alpha1:              1.2e-6,
			Alpha1Uncertainty:   0.1e-6,
			Alpha2:              2e-9,
			Alpha3:              0,
			ThermalConductivity: 13.8,
			SpecificHeat:        515,
			Density:             8100,
			ElasticModulus:      141e9,
			Range:               TemperatureRange{Min: 4, Max: 773},
			QualityFactor:       0.95,
		},
		{
			ID:                  "silicon",
			Name:                "Silicon",
			Category:            Optical,
			Alpha1:              2.6e-6,
			Alpha1Uncertainty:   0.1e-6,
			Alpha2:              3.7e-9,
			Alpha3:              -2.0e-12,
			ThermalConductivity: 148,
			SpecificHeat:        705,
			Density:             2329,
			ElasticModulus:      130e9,
			Range:               TemperatureRange{Min: 4, Max: 1273},
			QualityFactor:       0.98,
		},
		{
			ID:                  "ule_glass",
			Name:                "ULE Glass",
			Category:            Optical,
			Alpha1:              3e-8,
			Alpha1Uncertainty:   5e-9,
			Alpha2:              1e-11,
			Alpha3:              0,
			ThermalConductivity: 1.31,
			SpecificHeat:        772,
			Density:             2210,
			ElasticModulus:      67.6e9,
			Range:               TemperatureRange{Min: 4, Max: 773},
			QualityFactor:       0.97,
		},
		{
			ID:                  "titanium_6al4v",
			Name:                "Ti-6Al-4V",
			Category:            Structural,
			Alpha1:              8.6e-6,
			Alpha1Uncertainty:   0.2e-6,
			Alpha2:              1.5e-9,
			Alpha3:              0,
			ThermalConductivity: 6.7,
			SpecificHeat:        553,
			Density:             4430,
			ElasticModulus:      113.8e9,
			Range:               TemperatureRange{Min: 4, Max: 873},
			QualityFactor:       0.92,
		},
		{
			ID:                  "aluminum_6061",
			Name:                "Al-6061",
			Category:            Structural,
			Alpha1:              23.6e-6,
			Alpha1Uncertainty:   0.5e-6,
			Alpha2:              5e-9,
			Alpha3:              0,
			ThermalConductivity: 167,
			SpecificHeat:        896,
			Density:             2700,
			ElasticModulus:      68.9e9,
			Range:               TemperatureRange{Min: 4, Max: 773},
			QualityFactor:       0.88,
		},
	}
}

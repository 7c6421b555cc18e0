// Package harness runs evaluation scenarios against a material catalog.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: extra.cue                # optional, merged over the reference catalog
//	reference_temperature: 293.15     # optional
//	steps:
//	  - name: zerodur_tenth_kelvin
//	    op: evaluate                  # evaluate | thermal_function
//	    material: zerodur
//	    length: 0.1
//	    temperature: 293.25
//	    reference: 293.15             # optional
//	    expect:
//	      fields:
//	        absolute_expansion: {value: 5.0e-11, tolerance: 1.0e-13}
//	      advisory: false
//	  - name: missing
//	    op: evaluate
//	    material: unobtainium
//	    length: 0.1
//	    temperature: 300
//	    expect:
//	      error: unknown_material
//	assertions:
//	  - type: ratio
//	    left: {step: aluminum, field: absolute_expansion}
//	    right: {step: invar, field: absolute_expansion}
//	    value: 19.67
//	    tolerance: 0.01
//
// # Assertion Types
//
//   - equal: two step fields agree within tolerance (exactly when 0)
//   - ratio: left/right is within tolerance of value
//   - increasing: a field strictly increases across the listed steps
//
// # Run Identity
//
// Every run gets a UUIDv7 run id, attached to the evaluator's logger so
// that range advisories from concurrent runs can be told apart. Tests pin
// the id with WithRunIDGenerator for golden comparison.
package harness

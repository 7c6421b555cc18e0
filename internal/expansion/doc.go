// Package expansion evaluates thermal expansion, thermal stress and
// first-order uncertainty for materials in a material.Catalog.
//
// The model is the polynomial
//
//	L(T) = L₀ × [1 + α₁ΔT + α₂ΔT² + α₃ΔT³],  ΔT = T − T_ref
//
// with relative uncertainty σ(α₁)·|ΔT| (dominant term only) and the
// unconstrained Hookean stress estimate E·(f − 1).
//
// ThermalFunction is the separate quadratic form 1 + α₁ΔT + α₂ΔT²; it
// deliberately omits the cubic term.
//
// An Evaluator holds only immutable configuration and is safe for
// concurrent use. Evaluations do no I/O; the only side effect is logging:
// a warning when the temperature is outside the material's validated
// range (the result is still returned) and a debug trace per evaluation.
package expansion

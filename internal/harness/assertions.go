package harness

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the step outcomes.
// Returns one message per failed assertion.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertEqual:
			err = assertEqual(result, a)
		case AssertRatio:
			err = assertRatio(result, a)
		case AssertIncreasing:
			err = assertIncreasing(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// assertEqual checks that two step fields agree within tolerance.
func assertEqual(result *Result, a Assertion) error {
	left, err := lookupOperand(result, a.Left)
	if err != nil {
		return err
	}
	right, err := lookupOperand(result, a.Right)
	if err != nil {
		return err
	}

	if !within(left, right, a.Tolerance) {
		return &AssertionError{
			Type:     AssertEqual,
			Expected: fmt.Sprintf("%s == %s (± %g)", a.Left, a.Right, a.Tolerance),
			Actual:   fmt.Sprintf("%g vs %g", left, right),
		}
	}
	return nil
}

// assertRatio checks left/right against the expected value.
func assertRatio(result *Result, a Assertion) error {
	left, err := lookupOperand(result, a.Left)
	if err != nil {
		return err
	}
	right, err := lookupOperand(result, a.Right)
	if err != nil {
		return err
	}
	if right == 0 {
		return &AssertionError{
			Type:     AssertRatio,
			Expected: fmt.Sprintf("nonzero %s", a.Right),
			Actual:   "0",
		}
	}

	ratio := left / right
	if math.Abs(ratio-a.Value) > a.Tolerance {
		return &AssertionError{
			Type:     AssertRatio,
			Expected: fmt.Sprintf("%s / %s = %g ± %g", a.Left, a.Right, a.Value, a.Tolerance),
			Actual:   fmt.Sprintf("%g", ratio),
		}
	}
	return nil
}

// assertIncreasing checks that a field strictly increases across steps.
func assertIncreasing(result *Result, a Assertion) error {
	values := make([]float64, len(a.Steps))
	for i, name := range a.Steps {
		v, err := lookupOperand(result, &Operand{Step: name, Field: a.Field})
		if err != nil {
			return err
		}
		values[i] = v
	}

	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return &AssertionError{
				Type:     AssertIncreasing,
				Expected: fmt.Sprintf("%s increasing across %v", a.Field, a.Steps),
				Actual: fmt.Sprintf("%s (%g) is not above %s (%g)",
					a.Steps[i], values[i], a.Steps[i-1], values[i-1]),
			}
		}
	}
	return nil
}

func lookupOperand(result *Result, op *Operand) (float64, error) {
	step, ok := result.Step(op.Step)
	if !ok {
		return 0, fmt.Errorf("step %q not found", op.Step)
	}
	if step.Values == nil {
		return 0, fmt.Errorf("step %q has no values (%s)", op.Step, describeKind(step.ErrorKind))
	}
	v, ok := step.Values[op.Field]
	if !ok {
		return 0, fmt.Errorf("step %q has no field %q", op.Step, op.Field)
	}
	return v, nil
}

// String renders the operand as step.field.
func (o *Operand) String() string {
	return o.Step + "." + o.Field
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

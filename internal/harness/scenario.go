package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines an evaluation scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional CUE or YAML catalog merged over the reference
	// catalog. Relative paths are resolved against the scenario file.
	Catalog string `yaml:"catalog,omitempty"`

	// ReferenceTemperature overrides the evaluator default T_ref.
	ReferenceTemperature *float64 `yaml:"reference_temperature,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions relate the values of different steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single evaluator call.
type Step struct {
	// Name identifies the step in assertions and reports.
	Name string `yaml:"name"`

	// Op is OpEvaluate or OpThermalFunction.
	Op string `yaml:"op"`

	Material    string   `yaml:"material"`
	Length      float64  `yaml:"length,omitempty"`
	Temperature float64  `yaml:"temperature"`
	Reference   *float64 `yaml:"reference,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the step only has to succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected step behavior.
type ExpectClause struct {
	// Error is the expected error kind (see ErrorKind). Empty expects success.
	Error string `yaml:"error,omitempty"`

	// Fields are expected result values. Subset match.
	Fields map[string]FieldExpect `yaml:"fields,omitempty"`

	// Advisory, when set, asserts whether a range advisory was raised.
	Advisory *bool `yaml:"advisory,omitempty"`
}

// FieldExpect is an expected value with an absolute tolerance.
type FieldExpect struct {
	Value     float64 `yaml:"value"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Operand names a field of a step result.
type Operand struct {
	Step  string `yaml:"step"`
	Field string `yaml:"field"`
}

// Assertion relates results across steps.
type Assertion struct {
	// Type is one of AssertEqual, AssertRatio, AssertIncreasing.
	Type string `yaml:"type"`

	// Left and Right are used by equal and ratio.
	Left  *Operand `yaml:"left,omitempty"`
	Right *Operand `yaml:"right,omitempty"`

	// Steps and Field are used by increasing.
	Steps []string `yaml:"steps,omitempty"`
	Field string   `yaml:"field,omitempty"`

	Value     float64 `yaml:"value,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Step operations.
const (
	OpEvaluate        = "evaluate"
	OpThermalFunction = "thermal_function"
)

// Assertion type constants.
const (
	AssertEqual      = "equal"
	AssertRatio      = "ratio"
	AssertIncreasing = "increasing"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative catalog path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}
	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenario file is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required", i)
		}
		if names[step.Name] {
			return fmt.Errorf("steps[%d]: duplicate step name %q", i, step.Name)
		}
		names[step.Name] = true

		if step.Material == "" {
			return fmt.Errorf("steps[%d]: material is required", i)
		}
		switch step.Op {
		case OpEvaluate, OpThermalFunction:
		case "":
			return fmt.Errorf("steps[%d]: op is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}

		if step.Expect != nil {
			if err := validateExpect(i, step.Expect); err != nil {
				return err
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, names); err != nil {
			return err
		}
	}

	return nil
}

func validateExpect(index int, e *ExpectClause) error {
	if e.Error != "" {
		switch e.Error {
		case KindUnknownMaterial, KindDivisionUndefined, KindInvalidInput:
		default:
			return fmt.Errorf("steps[%d].expect: unknown error kind %q", index, e.Error)
		}
		if len(e.Fields) > 0 {
			return fmt.Errorf("steps[%d].expect: fields cannot be combined with error", index)
		}
	}
	for field, fe := range e.Fields {
		if fe.Tolerance < 0 {
			return fmt.Errorf("steps[%d].expect.fields.%s: tolerance must be >= 0", index, field)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	checkOperand := func(side string, op *Operand) error {
		if op == nil {
			return fmt.Errorf("assertions[%d]: %s is required for %s", index, side, a.Type)
		}
		if !steps[op.Step] {
			return fmt.Errorf("assertions[%d]: %s references unknown step %q", index, side, op.Step)
		}
		if op.Field == "" {
			return fmt.Errorf("assertions[%d]: %s.field is required", index, side)
		}
		return nil
	}

	switch a.Type {
	case AssertEqual, AssertRatio:
		if err := checkOperand("left", a.Left); err != nil {
			return err
		}
		if err := checkOperand("right", a.Right); err != nil {
			return err
		}
	case AssertIncreasing:
		if len(a.Steps) < 2 {
			return fmt.Errorf("assertions[%d]: increasing needs at least two steps", index)
		}
		if a.Field == "" {
			return fmt.Errorf("assertions[%d]: field is required for increasing", index)
		}
		for _, name := range a.Steps {
			if !steps[name] {
				return fmt.Errorf("assertions[%d]: unknown step %q", index, name)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}

	if a.Tolerance < 0 {
		return fmt.Errorf("assertions[%d]: tolerance must be >= 0", index)
	}
	return nil
}

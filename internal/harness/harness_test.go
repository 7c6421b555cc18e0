package harness

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thermex/internal/expansion"
	"github.com/roach88/thermex/internal/material"
	"github.com/roach88/thermex/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestRun_ReferenceProperties(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/reference_properties.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v, steps: %+v", result.Errors, result.Steps)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 4, result.Assertions)
	require.Len(t, result.Steps, 10)

	hot, ok := result.Step("zerodur_hot")
	require.True(t, ok)
	assert.Contains(t, hot.Advisory, "outside valid range")

	unknown, ok := result.Step("unknown_evaluate")
	require.True(t, ok)
	assert.Equal(t, KindUnknownMaterial, unknown.ErrorKind)
	assert.Nil(t, unknown.Values)
}

func TestRun_DefaultRunIDIsUUIDv7(t *testing.T) {
	scenario := &Scenario{
		Name:        "uuid",
		Description: "d",
		Steps:       []Step{{Name: "a", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	id, err := uuid.Parse(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRun_RunIDInLogs(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := &Scenario{
		Name:        "logged",
		Description: "d",
		Steps:       []Step{{Name: "hot", Op: OpEvaluate, Material: "zerodur", Length: 0.1, Temperature: 600}},
	}

	gen := testutil.NewSequentialRunIDGenerator()
	result, err := Run(scenario, WithRunIDGenerator(gen), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "test-run-0001", result.RunID)

	out := logs.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "run_id=test-run-0001")
	assert.Contains(t, out, "scenario=logged")

	second, err := Run(scenario, WithRunIDGenerator(gen))
	require.NoError(t, err)
	assert.Equal(t, "test-run-0002", second.RunID)
}

func TestRun_ExtraCatalog(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/extra_catalog.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v, steps: %+v", result.Errors, result.Steps)
}

func TestRun_WithCatalogBase(t *testing.T) {
	only, err := material.NewCatalog(material.ReferenceEntries()[0])
	require.NoError(t, err)

	scenario := &Scenario{
		Name:        "narrow",
		Description: "d",
		Steps: []Step{
			{Name: "present", Op: OpThermalFunction, Material: only.IDs()[0], Temperature: 300},
			{Name: "absent", Op: OpThermalFunction, Material: "silicon", Temperature: 300,
				Expect: &ExpectClause{Error: KindUnknownMaterial}},
		},
	}

	result, err := Run(scenario, WithCatalog(only))
	require.NoError(t, err)
	assert.True(t, result.Pass, "steps: %+v", result.Steps)
}

func TestRun_ScenarioReferenceTemperature(t *testing.T) {
	scenario := &Scenario{
		Name:                 "ref",
		Description:          "d",
		ReferenceTemperature: ptr(300.0),
		Steps: []Step{{
			Name: "a", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300,
			Expect: &ExpectClause{Fields: map[string]FieldExpect{
				"delta_temperature":     {Value: 0},
				"reference_temperature": {Value: 300},
			}},
		}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "steps: %+v", result.Steps)
}

func TestRun_ZeroReferenceTemperature(t *testing.T) {
	scenario := &Scenario{
		Name:                 "absolute_zero_ref",
		Description:          "d",
		ReferenceTemperature: ptr(0.0),
		Steps: []Step{
			{
				Name: "expand", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 10,
				Expect: &ExpectClause{Fields: map[string]FieldExpect{
					"delta_temperature":     {Value: 10},
					"reference_temperature": {Value: 0},
				}},
			},
			{
				Name: "fn", Op: OpThermalFunction, Material: "invar", Temperature: 10,
				Expect: &ExpectClause{Fields: map[string]FieldExpect{
					"thermal_function": {Value: 1.0000122, Tolerance: 1e-12},
				}},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "steps: %+v", result.Steps)
}

func TestRun_StepFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "d",
		Steps: []Step{
			{Name: "wrong_value", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 293.16,
				Expect: &ExpectClause{Fields: map[string]FieldExpect{
					"absolute_expansion": {Value: 1.2e-12, Tolerance: 1e-15},
				}}},
			{Name: "unknown_field", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300,
				Expect: &ExpectClause{Fields: map[string]FieldExpect{"flux": {Value: 1}}}},
			{Name: "expected_error", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300,
				Expect: &ExpectClause{Error: KindDivisionUndefined}},
			{Name: "unexpected_error", Op: OpEvaluate, Material: "unobtainium", Length: 0.1, Temperature: 300},
			{Name: "missing_advisory", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300,
				Expect: &ExpectClause{Advisory: ptr(true)}},
			{Name: "fine", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	want := map[string]string{
		"wrong_value":      "absolute_expansion: expected",
		"unknown_field":    `unknown field "flux"`,
		"expected_error":   "expected error division_undefined, got success",
		"unexpected_error": "unexpected error",
		"missing_advisory": "expected range advisory, got none",
	}
	for name, msg := range want {
		step, ok := result.Step(name)
		require.True(t, ok, name)
		assert.False(t, step.Pass, name)
		require.NotEmpty(t, step.Failures, name)
		assert.Contains(t, step.Failures[0], msg, name)
	}

	fine, _ := result.Step("fine")
	assert.True(t, fine.Pass)
}

func TestRun_CatalogLoadError(t *testing.T) {
	scenario := &Scenario{
		Name:        "broken",
		Description: "d",
		Catalog:     "testdata/does-not-exist.yaml",
		Steps:       []Step{{Name: "a", Op: OpEvaluate, Material: "invar", Length: 0.1, Temperature: 300}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scenario catalog")
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, KindUnknownMaterial, ErrorKind(&material.UnknownMaterialError{ID: "x"}))
	assert.Equal(t, KindDivisionUndefined, ErrorKind(&expansion.DivisionUndefinedError{Material: "x"}))
	assert.Equal(t, KindInvalidInput, ErrorKind(&expansion.InputError{Field: "temperature"}))
	assert.Equal(t, KindOther, ErrorKind(errors.New("boom")))
}

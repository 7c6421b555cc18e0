package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thermex/internal/testutil"
)

func TestGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"reference_properties", "degenerate_inputs"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario,
				WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-golden")))
			require.NoError(t, err)
			assert.True(t, result.Pass)
			assert.Equal(t, "run-golden", result.RunID)
		})
	}
}

func TestSummary_IndependentOfRunID(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/degenerate_inputs.yaml")
	require.NoError(t, err)

	a, err := Run(scenario)
	require.NoError(t, err)
	b, err := Run(scenario)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, string(Summary(a)), string(Summary(b)))
}

func TestSummary_ReportsFailures(t *testing.T) {
	r := NewResult("s", "run-1")
	r.Assertions = 1
	r.AddStep(StepOutcome{Name: "a", Op: OpEvaluate, Material: "invar", Pass: false, Failures: []string{"boom"}})
	r.AddError("assertions[0]: nope")

	want := "scenario: s\n" +
		"result: FAIL\n" +
		"steps:\n" +
		"  FAIL evaluate a [invar]\n" +
		"    - boom\n" +
		"assertions: 1 checked, 1 failed\n" +
		"  - assertions[0]: nope\n"
	assert.Equal(t, want, string(Summary(r)))
}

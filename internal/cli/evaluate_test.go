package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeData(t *testing.T, stdout string, data any) CLIResponse {
	t.Helper()
	resp := CLIResponse{Data: data}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	return resp
}

func TestExpand_Text(t *testing.T) {
	stdout, stderr, err := execute(t, "expand", "zerodur", "0.1", "293.25")
	require.NoError(t, err)

	assert.Contains(t, stdout, "zerodur (Zerodur)")
	assert.Contains(t, stdout, "absolute expansion:    0.050001 nm")
	assert.NotContains(t, stdout, "advisory:")
	assert.Contains(t, stdout, "within stability:      false")
	assert.NotContains(t, stderr, "level=WARN")
}

func TestExpand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "expand", "invar", "0.1", "293.16", "--format", "json")
	require.NoError(t, err)

	var r ExpandResult
	resp := decodeData(t, stdout, &r)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "invar", r.Material)
	assert.Equal(t, "Invar", r.Name)
	assert.InDelta(t, 1.2e-9, r.AbsoluteExpansion, 1e-12)
	assert.InDelta(t, 0.01, r.DeltaT, 1e-9)
	assert.Empty(t, r.Advisory)
}

func TestExpand_RefFlag(t *testing.T) {
	stdout, _, err := execute(t, "expand", "aluminum_6061", "0.1", "300", "--ref", "300", "--format", "json")
	require.NoError(t, err)

	var r ExpandResult
	decodeData(t, stdout, &r)
	assert.Equal(t, 300.0, r.ReferenceTemperature)
	assert.Equal(t, 1.0, r.ExpansionFactor)
	assert.Equal(t, 0.0, r.AbsoluteExpansion)
	assert.Equal(t, 0.0, r.ThermalStress)
}

func TestExpand_GlobalReference(t *testing.T) {
	stdout, _, err := execute(t, "--reference", "290", "expand", "silicon", "1", "290", "--format", "json")
	require.NoError(t, err)

	var r ExpandResult
	decodeData(t, stdout, &r)
	assert.Equal(t, 290.0, r.ReferenceTemperature)
	assert.Equal(t, 0.0, r.DeltaT)
}

func TestExpand_OutOfRangeAdvisory(t *testing.T) {
	stdout, stderr, err := execute(t, "expand", "zerodur", "0.1", "600")
	require.NoError(t, err)

	assert.Contains(t, stdout, "advisory:              temperature 600.0 K outside valid range [4, 573] K for zerodur")
	assert.Contains(t, stderr, "level=WARN")
}

func TestExpand_VerboseDebugTrace(t *testing.T) {
	_, stderr, err := execute(t, "expand", "invar", "0.1", "293.16", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown material", []string{"unobtainium", "0.1", "300"}, ErrCodeUnknownMaterial},
		{"zero length", []string{"invar", "0", "300"}, ErrCodeInvalidInput},
		{"nan temperature", []string{"invar", "0.1", "NaN"}, ErrCodeInvalidInput},
		{"bad length", []string{"invar", "ten", "300"}, ErrCodeInvalidArgument},
		{"bad temperature", []string{"invar", "0.1", "warm"}, ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"expand"}, tt.args...)
			args = append(args, "--format", "json")
			stdout, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestExpand_ArgCount(t *testing.T) {
	_, _, err := execute(t, "expand", "invar", "0.1")
	require.Error(t, err)
}

func TestFn_Text(t *testing.T) {
	stdout, _, err := execute(t, "--reference", "300", "fn", "zerodur", "300")
	require.NoError(t, err)
	assert.Equal(t, "f(zerodur, 300 K) = 1.000000000000000 (reference 300 K, quadratic)\n", stdout)
}

func TestFn_ZeroReference(t *testing.T) {
	stdout, _, err := execute(t, "--reference", "0", "fn", "invar", "10", "--format", "json")
	require.NoError(t, err)

	var r FnResult
	decodeData(t, stdout, &r)
	assert.Equal(t, 0.0, r.ReferenceTemperature)
	assert.InDelta(t, 1.0000122, r.Value, 1e-12)
}

func TestFn_JSON(t *testing.T) {
	stdout, _, err := execute(t, "fn", "invar", "303.15", "--format", "json")
	require.NoError(t, err)

	var r FnResult
	decodeData(t, stdout, &r)
	assert.Equal(t, "invar", r.Material)
	assert.Equal(t, 293.15, r.ReferenceTemperature)
	assert.InDelta(t, 1+1.2e-6*10+2e-9*100, r.Value, 1e-12)
}

func TestFn_UnknownMaterial(t *testing.T) {
	stdout, _, err := execute(t, "fn", "unobtainium", "300")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E004]")
}

func TestCompare_Defaults(t *testing.T) {
	stdout, _, err := execute(t, "compare", "--format", "json")
	require.NoError(t, err)

	var r CompareResult
	decodeData(t, stdout, &r)
	assert.Equal(t, 0.1, r.Length)
	assert.Equal(t, 0.01, r.DeltaT)
	assert.Equal(t, 0.01, r.TargetStability)
	require.Len(t, r.Results, len(DefaultCompareMaterials))
	for i, id := range DefaultCompareMaterials {
		assert.Equal(t, id, r.Results[i].Material)
	}
}

func TestCompare_Selected(t *testing.T) {
	stdout, _, err := execute(t, "compare", "invar", "aluminum_6061", "--format", "json")
	require.NoError(t, err)

	var r CompareResult
	decodeData(t, stdout, &r)
	require.Len(t, r.Results, 2)
	assert.InDelta(t, 1.2e-9, r.Results[0].AbsoluteExpansion, 1e-12)
	assert.InDelta(t, 2.36e-8, r.Results[1].AbsoluteExpansion, 1e-11)
}

func TestCompare_Text(t *testing.T) {
	stdout, _, err := execute(t, "compare", "zerodur", "--length", "1", "--delta", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "length 1 m, ΔT 1 K (target stability 0.01 K)")
	assert.Contains(t, stdout, "MATERIAL")
	assert.Contains(t, stdout, "zerodur")
}

func TestCompare_UnknownMaterial(t *testing.T) {
	_, _, err := execute(t, "compare", "invar", "unobtainium")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Summary renders a result as a stable, line-oriented report. Numeric
// values and the run id are left out so the report only changes when
// outcomes change.
func Summary(r *Result) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "scenario: %s\n", r.Name)
	fmt.Fprintf(&buf, "result: %s\n", passLabel(r.Pass))

	fmt.Fprintf(&buf, "steps:\n")
	for _, s := range r.Steps {
		fmt.Fprintf(&buf, "  %s %s %s [%s]", passLabel(s.Pass), s.Op, s.Name, s.Material)
		if s.ErrorKind != "" {
			fmt.Fprintf(&buf, " error=%s", s.ErrorKind)
		}
		if s.Advisory != "" {
			fmt.Fprintf(&buf, " advisory")
		}
		buf.WriteByte('\n')
		for _, f := range s.Failures {
			fmt.Fprintf(&buf, "    - %s\n", f)
		}
	}

	fmt.Fprintf(&buf, "assertions: %d checked, %d failed\n", r.Assertions, len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(&buf, "  - %s\n", e)
	}

	return buf.Bytes()
}

func passLabel(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

// RunWithGolden executes a scenario and compares its Summary against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Summary(result))

	return result, nil
}

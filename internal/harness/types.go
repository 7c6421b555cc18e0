package harness

// StepOutcome records what one step produced and whether it met its
// expectations.
type StepOutcome struct {
	Name     string `json:"name"`
	Op       string `json:"op"`
	Material string `json:"material"`

	// Values holds the numeric outputs keyed by result field name.
	// Nil when the step failed.
	Values map[string]float64 `json:"values,omitempty"`

	// ErrorKind classifies the step error, if any (see ErrorKind).
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`

	// Advisory is the range advisory text, empty when in range.
	Advisory string `json:"advisory,omitempty"`

	Pass     bool     `json:"pass"`
	Failures []string `json:"failures,omitempty"`
}

func (o *StepOutcome) fail(msg string) {
	o.Failures = append(o.Failures, msg)
	o.Pass = false
}

// Result is the outcome of a scenario execution.
type Result struct {
	Name  string `json:"name"`
	RunID string `json:"run_id"`

	// Pass is true if every step met its expectations and every
	// assertion held.
	Pass bool `json:"pass"`

	Steps []StepOutcome `json:"steps"`

	// Assertions is the number of assertions evaluated.
	Assertions int `json:"assertions"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(name, runID string) *Result {
	return &Result{
		Name:   name,
		RunID:  runID,
		Pass:   true,
		Steps:  []StepOutcome{},
		Errors: []string{},
	}
}

// AddStep records a step outcome, failing the result if the step failed.
func (r *Result) AddStep(o StepOutcome) {
	r.Steps = append(r.Steps, o)
	if !o.Pass {
		r.Pass = false
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Step returns the outcome of the named step.
func (r *Result) Step(name string) (StepOutcome, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepOutcome{}, false
}

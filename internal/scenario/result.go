package scenario

import "time"

// Result is the outcome of one scenario run.
type Result struct {
	// Scenario is the scenario that was run.
	Scenario *Scenario

	// Passed indicates if every step ran and every expectation held.
	Passed bool

	// Error is the error that stopped the run, if any.
	Error error

	// StepResults contains results for each executed step.
	StepResults []*StepResult

	// Duration is how long the run took.
	Duration time.Duration
}

// StepResult is the outcome of one step.
type StepResult struct {
	// Step is the step that was executed.
	Step *Step

	// StepIndex is the index of this step (0-based).
	StepIndex int

	// Passed indicates if the step ran and its expectations held.
	Passed bool

	// Error is the error that caused failure, if any.
	Error error

	// Failures lists unmet expectations.
	Failures []string
}

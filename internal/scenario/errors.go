package scenario

import (
	"errors"
	"fmt"
)

// ErrAssertion is matched by every failed page-state check
var ErrAssertion = errors.New("assertion failed")

// AssertionError reports an observed page state that differs from the
// expected literal
type AssertionError struct {
	Check string
	Want  string
	Got   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: want %q, got %q", e.Check, e.Want, e.Got)
}

// Unwrap reports ErrAssertion
func (e *AssertionError) Unwrap() error { return ErrAssertion }

// StepError names the step that aborted a run
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func assertion(check, want, got string) error {
	return &AssertionError{Check: check, Want: want, Got: got}
}

package result

import (
	"errors"
	"fmt"
	"slices"
)

// Outcome classifies a Result.
type Outcome uint8

const (
	// OutcomeSuccess is a clean success carrying a value.
	OutcomeSuccess Outcome = iota
	// OutcomeWarning is a partial success: a best-effort value plus errors.
	OutcomeWarning
	// OutcomeFailure carries errors and no usable value.
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeWarning:
		return "warning"
	case OutcomeFailure:
		return "failure"
	}
	return "unknown"
}

// ErrNoErrors is the panic value when a failure or warning is built from an
// empty error list.
var ErrNoErrors = errors.New("result: error list must not be empty")

// Result is the outcome of a decode-like operation. Failures and warnings
// always carry at least one error, in the order they were produced.
type Result[E, A any] struct {
	outcome Outcome
	errs    []E
	value   A
}

// Succeed returns a clean success.
func Succeed[E, A any](value A) Result[E, A] {
	return Result[E, A]{outcome: OutcomeSuccess, value: value}
}

// Fail returns a failure with at least one error.
func Fail[E, A any](err E, more ...E) Result[E, A] {
	return Result[E, A]{outcome: OutcomeFailure, errs: prepend(err, more)}
}

// FailAll returns a failure carrying errs. It panics when errs is empty.
func FailAll[E, A any](errs []E) Result[E, A] {
	mustHave(errs)
	return Result[E, A]{outcome: OutcomeFailure, errs: slices.Clone(errs)}
}

// Warn returns a partial success: value is usable but errors were recorded.
func Warn[E, A any](value A, err E, more ...E) Result[E, A] {
	return Result[E, A]{outcome: OutcomeWarning, errs: prepend(err, more), value: value}
}

// WarnAll returns a partial success carrying errs. It panics when errs is empty.
func WarnAll[E, A any](value A, errs []E) Result[E, A] {
	mustHave(errs)
	return Result[E, A]{outcome: OutcomeWarning, errs: slices.Clone(errs), value: value}
}

// Outcome returns the result classification.
func (r Result[E, A]) Outcome() Outcome { return r.outcome }

// IsSuccess reports a clean success.
func (r Result[E, A]) IsSuccess() bool { return r.outcome == OutcomeSuccess }

// IsWarning reports a partial success.
func (r Result[E, A]) IsWarning() bool { return r.outcome == OutcomeWarning }

// IsFailure reports a failure.
func (r Result[E, A]) IsFailure() bool { return r.outcome == OutcomeFailure }

// Value returns the value of a success or warning.
func (r Result[E, A]) Value() (A, bool) {
	if r.outcome == OutcomeFailure {
		var zero A
		return zero, false
	}
	return r.value, true
}

// Errors returns a copy of the recorded errors (nil for a clean success).
func (r Result[E, A]) Errors() []E {
	return slices.Clone(r.errs)
}

func (r Result[E, A]) String() string {
	switch r.outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("success(%v)", r.value)
	case OutcomeWarning:
		return fmt.Sprintf("warning(%v, %d errors)", r.value, len(r.errs))
	default:
		return fmt.Sprintf("failure(%d errors)", len(r.errs))
	}
}

func prepend[E any](first E, rest []E) []E {
	out := make([]E, 0, len(rest)+1)
	out = append(out, first)
	return append(out, rest...)
}

func mustHave[E any](errs []E) {
	if len(errs) == 0 {
		panic(ErrNoErrors)
	}
}

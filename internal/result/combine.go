package result

// Map transforms the value of a success or warning.
func Map[E, A, B any](r Result[E, A], f func(A) B) Result[E, B] {
	switch r.outcome {
	case OutcomeSuccess:
		return Succeed[E](f(r.value))
	case OutcomeWarning:
		return Result[E, B]{outcome: OutcomeWarning, errs: r.errs, value: f(r.value)}
	default:
		return Result[E, B]{outcome: OutcomeFailure, errs: r.errs}
	}
}

// FlatMap chains a dependent computation. Warnings accumulate: errors of r
// are placed before the errors of f's result, and a failure anywhere makes
// the whole chain fail.
func FlatMap[E, A, B any](r Result[E, A], f func(A) Result[E, B]) Result[E, B] {
	switch r.outcome {
	case OutcomeFailure:
		return Result[E, B]{outcome: OutcomeFailure, errs: r.errs}
	case OutcomeSuccess:
		return f(r.value)
	}
	next := f(r.value)
	errs := make([]E, 0, len(r.errs)+len(next.errs))
	errs = append(errs, r.errs...)
	errs = append(errs, next.errs...)
	if next.outcome == OutcomeFailure {
		return Result[E, B]{outcome: OutcomeFailure, errs: errs}
	}
	return Result[E, B]{outcome: OutcomeWarning, errs: errs, value: next.value}
}

// Recover turns a failure into a warning carrying fallback. Other outcomes
// are returned unchanged.
func Recover[E, A any](r Result[E, A], fallback A) Result[E, A] {
	if r.outcome != OutcomeFailure {
		return r
	}
	return Result[E, A]{outcome: OutcomeWarning, errs: r.errs, value: fallback}
}

// Join collects the values of rs in order. Errors of every result are
// concatenated in order; any failure fails the whole, otherwise any warning
// downgrades the success.
func Join[E, A any](rs []Result[E, A]) Result[E, []A] {
	values := make([]A, 0, len(rs))
	var errs []E
	outcome := OutcomeSuccess
	for _, r := range rs {
		errs = append(errs, r.errs...)
		if r.outcome > outcome {
			outcome = r.outcome
		}
		if r.outcome != OutcomeFailure {
			values = append(values, r.value)
		}
	}
	switch outcome {
	case OutcomeFailure:
		return Result[E, []A]{outcome: OutcomeFailure, errs: errs}
	case OutcomeWarning:
		return Result[E, []A]{outcome: OutcomeWarning, errs: errs, value: values}
	}
	return Succeed[E](values)
}

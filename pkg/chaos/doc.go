// Package chaos implements the chaos-game point generator.
//
// Each step draws an eligible vertex i (see package rule), then moves the current
// point toward it:
//
//	next = current + jump[i] * (vertex[i] - current)
//
// The returned [Sequence] starts with the caller's start point, so a run of n steps
// yields n+1 points. The vertex chosen at each step is kept alongside the points;
// [Resume] uses those choices to rebuild the rule history and continue a run as if
// it had never stopped.
//
// # Determinism
//
// All randomness comes from the injected random.Source. Running [Generate] twice
// with sources in the same state produces identical sequences.
//
// # Errors
//
// Configuration problems (empty vertex set, jump/vertex length mismatch, negative
// jumps, degenerate rules) are reported before the first step with
// errors.ErrCodeConfiguration. A non-finite coordinate aborts the run with
// errors.ErrCodeNumeric; the cause is an *errors.NonFiniteError whose Partial field
// holds the []geometry.Point computed so far.
package chaos

// Package incremental decides how to turn a cached sequence into one of a newly
// requested length.
//
// Lengths are point counts, start point included. Given a cached sequence of
// length old and a request for n points:
//
//   - n > old: extend by n-old steps, keeping the cached prefix untouched.
//   - n == old: reuse the cached sequence as is.
//   - 0 < old-n < TruncateThreshold: return the first n points; nothing is recomputed.
//   - otherwise: regenerate from scratch.
//
// A sequence generated under different parameters is never passed in; callers key
// their caches on every parameter except the length.
package incremental

import (
	"github.com/matzehuels/chaostower/pkg/errors"
)

// TruncateThreshold is the smallest decrease in length that triggers regeneration
// instead of truncation.
const TruncateThreshold = 5

// Decision records which path Resolve took.
type Decision int

const (
	// Regenerate discards the cached value and generates n points from scratch.
	Regenerate Decision = iota
	// Extend continues the cached sequence.
	Extend
	// Truncate returns a prefix of the cached sequence.
	Truncate
	// Reuse returns the cached sequence unchanged.
	Reuse
)

func (d Decision) String() string {
	switch d {
	case Extend:
		return "extend"
	case Truncate:
		return "truncate"
	case Reuse:
		return "reuse"
	default:
		return "regenerate"
	}
}

// Sequence is implemented by *chaos.Sequence and *ifs.Sequence. Len must be safe
// to call on a nil value.
type Sequence[S any] interface {
	Len() int
	Truncate(n int) S
}

// ExtendFunc continues cached by extra steps and returns the longer sequence.
type ExtendFunc[S any] func(cached S, extra int) (S, error)

// RegenerateFunc produces a fresh sequence of n points.
type RegenerateFunc[S any] func(n int) (S, error)

// Plan returns the decision Resolve would take, without doing any work.
func Plan(old, n int) Decision {
	switch {
	case old <= 0:
		return Regenerate
	case n > old:
		return Extend
	case n == old:
		return Reuse
	case old-n < TruncateThreshold:
		return Truncate
	default:
		return Regenerate
	}
}

// Resolve produces a sequence of n points from cached, calling at most one of
// extend and regen. A cached value with Len() == 0 counts as absent.
func Resolve[S Sequence[S]](cached S, n int, extend ExtendFunc[S], regen RegenerateFunc[S]) (S, Decision, error) {
	var zero S
	if n < 1 {
		return zero, Regenerate, errors.Configuration("requested length must be at least 1, got %d", n)
	}

	old := cached.Len()
	switch d := Plan(old, n); d {
	case Extend:
		out, err := extend(cached, n-old)
		return out, d, err
	case Reuse:
		return cached, d, nil
	case Truncate:
		return cached.Truncate(n), d, nil
	default:
		out, err := regen(n)
		return out, d, err
	}
}

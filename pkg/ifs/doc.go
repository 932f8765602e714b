// Package ifs implements the iterated-function-system point generator.
//
// Each step draws a transform index i with probability p[i] and applies
// maps[i] to the current point. Draws use inverse-CDF sampling: one uniform
// float, then a binary search over the cumulative weights.
//
// # Coefficient orderings
//
// An [AffineMap] holds six coefficients (a, b, c, d, e, f). Two fixed readings are
// supported, selected once per run by [Mode]:
//
//	Regular:   x' = a·x + b·y + c    y' = d·x + e·y + f
//	Alternate: x' = a·x + b·y + e    y' = c·x + d·y + f
//
// Alternate maps are converted to the regular reading before the loop starts,
// so the hot loop has a single code path.
//
// # Text input
//
// [ParseMaps] and [ParseProbabilities] read the textual lists accepted at the
// CLI and API boundary. Numbers may be decimals or fractions ("1/3").
package ifs

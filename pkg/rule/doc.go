// Package rule implements chaos-game vertex selection rules.
//
// A [Rule] restricts which vertex indices may be drawn next, based on the most
// recent choices. It has three parameters:
//
//   - Window: how many recent choices are remembered (0 disables the rule)
//   - Offset: each remembered choice h excludes index (h + Offset) mod n
//   - Symmetric: also exclude (h - Offset) mod n
//
// With Offset 0 and Window 1 the rule forbids repeating the previous vertex;
// with Offset 2 on a square it forbids the opposite corner.
//
// Per-run history lives in a [State], a ring buffer sized to the window. A State
// is owned by exactly one run and must not be shared.
//
//	st, err := rule.New(1, 0, false).Start(len(vertices))
//	i := st.Draw(src) // records i in the history
package rule

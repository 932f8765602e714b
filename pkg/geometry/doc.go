// Package geometry provides the points and vertex sets used by the chaos game.
//
// A [VertexSet] is the ordered list of targets a chaos-game point jumps toward.
// Order matters: selection rules refer to vertices by index, and a [JumpVector]
// holds one jump fraction per index.
//
// # Construction
//
// Vertex sets are built from a regular polygon and optionally augmented:
//
//	vs, err := geometry.RegularPolygon(4, 1, true)
//	vs = geometry.StackMidpoints(vs) // 8 vertices: corners, then edge midpoints
//	vs = geometry.StackCenter(vs)    // 9 vertices: ... then the centroid
//	jump := geometry.Broadcast(2.0/3.0, len(vs))
//
// All functions are pure: inputs are never modified and results are fresh slices.
//
// # Coordinates
//
// [Point] carries a third coordinate Z used as a homogeneous slot. The engines
// interpolate or transform X and Y only; Z passes through unchanged.
package geometry

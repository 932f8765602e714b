// Package transitions draws a selection rule as a directed graph.
//
// Each polygon vertex becomes a node; an edge i -> j means vertex j may be
// drawn right after vertex i. Edge labels give the probability of that move
// when the rule's history holds only i. Rules with a window longer than one
// exclude more vertices once the history fills up, so the graph shows the
// most permissive case.
//
//	dot, err := transitions.ToDOT(rule.New(1, 2, false), 4, transitions.Options{Labels: true})
//	svg, err := transitions.RenderSVG(ctx, dot)
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly; no system installation is required.
package transitions

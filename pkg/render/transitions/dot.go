package transitions

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chaostower/pkg/rule"
)

// Options configures DOT generation.
type Options struct {
	// Labels adds the transition probability to every edge. It is ignored for
	// rules with a window above one, whose next draw also depends on older choices.
	Labels bool
	// Names overrides the node labels. Missing entries fall back to the index.
	Names []string
}

// Adjacency returns, for every vertex i, the vertices eligible right after i
// when i is the only remembered choice. For a window of one that is the full
// transition relation; for longer windows it describes the first step after i.
func Adjacency(r rule.Rule, n int) ([][]int, error) {
	if err := r.Validate(n); err != nil {
		return nil, err
	}
	adj := make([][]int, n)
	for i := range adj {
		adj[i] = r.Eligible(n, i)
	}
	return adj, nil
}

// ToDOT renders the transition graph of r over n vertices as Graphviz DOT.
func ToDOT(r rule.Rule, n int, opts Options) (string, error) {
	adj, err := Adjacency(r, n)
	if err != nil {
		return "", err
	}

	labels := opts.Labels && r.Window <= 1

	var buf bytes.Buffer
	buf.WriteString("digraph rule {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", describe(r))
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n\n")

	for i := 0; i < n; i++ {
		name := fmt.Sprint(i)
		if i < len(opts.Names) && opts.Names[i] != "" {
			name = opts.Names[i]
		}
		fmt.Fprintf(&buf, "  v%d [label=%q];\n", i, name)
	}
	buf.WriteString("\n")
	for i, next := range adj {
		for _, j := range next {
			if labels {
				fmt.Fprintf(&buf, "  v%d -> v%d [label=\"1/%d\"];\n", i, j, len(next))
			} else {
				fmt.Fprintf(&buf, "  v%d -> v%d;\n", i, j)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func describe(r rule.Rule) string {
	if r.IsNone() {
		return "no rule"
	}
	s := fmt.Sprintf("window=%d offset=%d", r.Window, r.Offset)
	if r.Symmetric {
		s += " symmetric"
	}
	if r.Window > 1 {
		s += " (first step after each vertex)"
	}
	return s
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

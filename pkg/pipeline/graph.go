package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chaostower/pkg/cache"
	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/observability"
	"github.com/matzehuels/chaostower/pkg/render/transitions"
)

// Rule graph formats.
const (
	GraphFormatDOT = "dot"
	GraphFormatSVG = "svg"
)

// RuleGraph renders the transition graph of the selection rule in opts over
// the stacked vertex set. SVG output is cached; DOT is cheap and is not.
func (r *Runner) RuleGraph(ctx context.Context, opts ChaosOptions, format string) ([]byte, error) {
	if format != GraphFormatDOT && format != GraphFormatSVG {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid graph format: %q (must be one of: dot, svg)", format)
	}
	if err := opts.ValidateAndSetDefaults(r.Presets); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	n := opts.Vertices()
	dot, err := transitions.ToDOT(opts.Rule(), n, transitions.Options{Labels: true, Names: vertexNames(opts)})
	if err != nil {
		return nil, err
	}
	if format == GraphFormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.GraphKey(struct {
		Rule any
		N    int
		Mid  bool
		Ctr  bool
	}{opts.Rule(), opts.Polygon, opts.Midpoints, opts.Center}, format)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "graph")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	svg, err := transitions.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render rule graph")
	}
	if err := r.Cache.Set(ctx, key, svg, cache.GraphTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", "graph", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", len(svg))
	}
	return svg, nil
}

// vertexNames labels polygon vertices by index, midpoints as "m<k>" and the
// centre as "c".
func vertexNames(opts ChaosOptions) []string {
	names := make([]string, 0, opts.Vertices())
	for k := 0; k < opts.Polygon; k++ {
		names = append(names, fmt.Sprint(k))
	}
	if opts.Midpoints {
		for k := 0; k < opts.Polygon; k++ {
			names = append(names, fmt.Sprintf("m%d", k))
		}
	}
	if opts.Center {
		names = append(names, "c")
	}
	return names
}

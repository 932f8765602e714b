// Package pkg holds the chaostower libraries.
//
// # Overview
//
// chaostower generates point sets that approximate self-similar fractals with
// two stochastic methods: the chaos game and iterated function systems. The
// packages are layered, leaves first:
//
//  1. [errors], [geometry], [random] - coded errors, points and polygons, seeded sources
//  2. [rule] - vertex selection rules for the chaos game
//  3. [chaos], [ifs] - the two engines
//  4. [incremental] - extend / truncate / regenerate decisions
//  5. [presets], [cache], [observability] - named parameters, persistence, hooks
//  6. [pipeline] - options, validation and the cached runner
//  7. [io], [render/transitions], [server] - exports, rule graphs, HTTP API
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.RunChaos(ctx, pipeline.ChaosOptions{Preset: "vicsek", N: 20_000})
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Sequence.Points {
//	    plot(p.X, p.Y)
//	}
//
// The engines can also be used directly with any random source:
//
//	seq, err := chaos.Generate(cfg, 10_000, random.New(42))
//
// [errors]: github.com/matzehuels/chaostower/pkg/errors
// [geometry]: github.com/matzehuels/chaostower/pkg/geometry
// [random]: github.com/matzehuels/chaostower/pkg/random
// [rule]: github.com/matzehuels/chaostower/pkg/rule
// [chaos]: github.com/matzehuels/chaostower/pkg/chaos
// [ifs]: github.com/matzehuels/chaostower/pkg/ifs
// [incremental]: github.com/matzehuels/chaostower/pkg/incremental
// [presets]: github.com/matzehuels/chaostower/pkg/presets
// [cache]: github.com/matzehuels/chaostower/pkg/cache
// [observability]: github.com/matzehuels/chaostower/pkg/observability
// [pipeline]: github.com/matzehuels/chaostower/pkg/pipeline
// [io]: github.com/matzehuels/chaostower/pkg/io
// [render/transitions]: github.com/matzehuels/chaostower/pkg/render/transitions
// [server]: github.com/matzehuels/chaostower/pkg/server
package pkg

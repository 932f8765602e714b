package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chaostower/pkg/cache"
	"github.com/matzehuels/chaostower/pkg/chaos"
	"github.com/matzehuels/chaostower/pkg/ifs"
	"github.com/matzehuels/chaostower/pkg/incremental"
	"github.com/matzehuels/chaostower/pkg/observability"
	"github.com/matzehuels/chaostower/pkg/presets"
	"github.com/matzehuels/chaostower/pkg/random"
)

// Runner executes engine runs with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one.
// Each run gets its own random source.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Presets presets.Set
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default keyer and a nil logger uses log.Default(). Presets start as the
// built-in set.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Presets: presets.Builtin(),
	}
}

// Result is the outcome of one run.
type Result[S any] struct {
	RunID    string               `json:"run_id"`
	Engine   string               `json:"engine"`
	Key      string               `json:"-"`
	Decision incremental.Decision `json:"-"`
	CacheHit bool                 `json:"cache_hit"`
	Duration time.Duration        `json:"duration"`
	Sequence S                    `json:"sequence"`
}

type (
	ChaosResult = Result[*chaos.Sequence]
	IFSResult   = Result[*ifs.Sequence]
)

// entry is what the cache stores for a sequence: the points plus the random
// source state after the final step, so the sequence can be extended exactly.
type entry[S any] struct {
	Sequence  S      `json:"sequence"`
	RandState []byte `json:"rand_state"`
}

// RunChaos validates opts and produces a chaos-game sequence of opts.N points.
func (r *Runner) RunChaos(ctx context.Context, opts ChaosOptions) (*ChaosResult, error) {
	if err := opts.ValidateAndSetDefaults(r.Presets); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SequenceKey(EngineChaos, opts.keyParams())
	return run(ctx, r, EngineChaos, key, opts.N, opts.Seed, opts.Refresh,
		func(src random.Source, n int) (*chaos.Sequence, error) { return chaos.Generate(cfg, n-1, src) },
		chaos.Resume,
	)
}

// RunIFS validates opts and produces an IFS sequence of opts.N points.
func (r *Runner) RunIFS(ctx context.Context, opts IFSOptions) (*IFSResult, error) {
	if err := opts.ValidateAndSetDefaults(r.Presets); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SequenceKey(EngineIFS, opts.keyParams())
	return run(ctx, r, EngineIFS, key, opts.N, opts.Seed, opts.Refresh,
		func(src random.Source, n int) (*ifs.Sequence, error) { return ifs.Generate(cfg, n-1, src) },
		ifs.Resume,
	)
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// run resolves a sequence against the cache. generate builds a fresh sequence of
// n points; resume extends one.
func run[S incremental.Sequence[S]](
	ctx context.Context,
	r *Runner,
	engine, key string,
	n int,
	seed uint64,
	refresh bool,
	generate func(random.Source, int) (S, error),
	resume func(S, int, random.Source) (S, error),
) (*Result[S], error) {
	start := time.Now()
	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, engine, n)

	var cached entry[S]
	hit := false
	if !refresh {
		cached, hit = load[S](ctx, r, engine, key)
	}

	// src is whichever source produced the newest points; its state is saved.
	var src *random.PCG
	regen := func(n int) (S, error) {
		src = random.New(seed)
		return generate(src, n)
	}
	fellBack := false
	extend := func(seq S, extra int) (S, error) {
		restored, err := random.Restore(cached.RandState)
		if err != nil {
			r.Logger.Warn("cached random state unusable, regenerating", "engine", engine, "error", err)
			fellBack = true
			return regen(seq.Len() + extra)
		}
		src = restored
		return resume(seq, extra, src)
	}

	seq, decision, err := incremental.Resolve(cached.Sequence, n, extend, regen)
	if fellBack {
		decision = incremental.Regenerate
	}
	elapsed := time.Since(start)
	hooks.OnGenerateComplete(ctx, engine, decision.String(), seq.Len(), elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("resolved sequence",
		"engine", engine,
		"points", seq.Len(),
		"decision", decision,
		"cache_hit", hit,
		"duration", elapsed)

	// A truncated result is a prefix of the cached entry; keeping the longer
	// entry keeps its random state valid. A reused one is already stored.
	if decision != incremental.Truncate && decision != incremental.Reuse {
		store(ctx, r, engine, key, seq, src)
	}

	return &Result[S]{
		RunID:    uuid.NewString(),
		Engine:   engine,
		Key:      key,
		Decision: decision,
		CacheHit: hit,
		Duration: elapsed,
		Sequence: seq,
	}, nil
}

func load[S incremental.Sequence[S]](ctx context.Context, r *Runner, engine, key string) (entry[S], bool) {
	var data []byte
	var hit bool
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "engine", engine, "error", err)
		observability.Cache().OnCacheMiss(ctx, engine)
		return entry[S]{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, engine)
		return entry[S]{}, false
	}

	var e entry[S]
	if err := json.Unmarshal(data, &e); err != nil || e.Sequence.Len() == 0 {
		r.Logger.Debug("discarding unreadable cache entry", "engine", engine, "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, engine)
		return entry[S]{}, false
	}
	observability.Cache().OnCacheHit(ctx, engine)
	return e, true
}

func store[S incremental.Sequence[S]](ctx context.Context, r *Runner, engine, key string, seq S, src *random.PCG) {
	if src == nil {
		return
	}
	state, err := src.State()
	if err != nil {
		r.Logger.Warn("cannot save random state", "engine", engine, "error", err)
		return
	}
	data, err := json.Marshal(entry[S]{Sequence: seq, RandState: state})
	if err != nil {
		r.Logger.Warn("cannot encode sequence", "engine", engine, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.SequenceTTL); err != nil {
		r.Logger.Warn("cache write failed", "engine", engine, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, engine, len(data))
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	pkgio "github.com/matzehuels/chaostower/pkg/io"
	"github.com/matzehuels/chaostower/pkg/pipeline"
	"github.com/matzehuels/chaostower/pkg/presets"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	dir     string // output directory
	format  string // json or csv
	jobs    int    // concurrent runs
	points  int    // overrides every preset's point count when > 0
	noCache bool
}

// batchJob is one preset to generate.
type batchJob struct {
	engine string
	name   string
}

func (j batchJob) String() string { return j.engine + ":" + j.name }

func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{dir: ".", jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:   "batch [engine:preset ...]",
		Short: "Generate several presets concurrently",
		Long: `Generate several presets concurrently, one file per preset.

Presets are named as engine:name (chaos:sierpc, ifs:fern) or by bare name when
only one engine has a preset of that name. Without arguments every preset is
generated. Files are written to <dir>/<engine>-<name>.<format>.`,
		Example: `  chaostower batch --dir out
  chaostower batch chaos:vicsek ifs:fern dragon -f csv -j 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Format
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if opts.jobs < 1 {
				return fmt.Errorf("--jobs must be at least 1")
			}
			jobs, err := resolveBatch(c.runnerPresets(), args)
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), jobs, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, csv (default: config)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "number of presets generated at once")
	cmd.Flags().IntVarP(&opts.points, "points", "n", 0, "number of points for every preset (default: each preset's)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the sequence cache")
	return cmd
}

// resolveBatch turns arguments into jobs. No arguments selects every preset.
func resolveBatch(set presets.Set, args []string) ([]batchJob, error) {
	if len(args) == 0 {
		var jobs []batchJob
		for _, name := range set.ChaosNames() {
			jobs = append(jobs, batchJob{pipeline.EngineChaos, name})
		}
		for _, name := range set.IFSNames() {
			jobs = append(jobs, batchJob{pipeline.EngineIFS, name})
		}
		return jobs, nil
	}

	jobs := make([]batchJob, 0, len(args))
	for _, arg := range args {
		engine, name, qualified := strings.Cut(arg, ":")
		if !qualified {
			name = engine
			_, chaosErr := set.ChaosPreset(name)
			_, ifsErr := set.IFSPreset(name)
			switch {
			case chaosErr == nil && ifsErr == nil:
				return nil, fmt.Errorf("preset %q exists for both engines; write chaos:%s or ifs:%s", name, name, name)
			case chaosErr == nil:
				engine = pipeline.EngineChaos
			case ifsErr == nil:
				engine = pipeline.EngineIFS
			default:
				return nil, chaosErr
			}
		}
		switch engine {
		case pipeline.EngineChaos:
			p, err := set.ChaosPreset(name)
			if err != nil {
				return nil, err
			}
			name = p.Name
		case pipeline.EngineIFS:
			p, err := set.IFSPreset(name)
			if err != nil {
				return nil, err
			}
			name = p.Name
		default:
			return nil, fmt.Errorf("unknown engine %q in %q (want chaos or ifs)", engine, arg)
		}
		jobs = append(jobs, batchJob{engine, name})
	}
	return jobs, nil
}

// runBatch generates jobs with at most opts.jobs running at once. The first
// failure cancels the rest.
func (c *CLI) runBatch(ctx context.Context, jobs []batchJob, opts batchOpts) error {
	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.dir, err)
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var mu sync.Mutex
	var total int

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.dir, job.engine+"-"+job.name+"."+opts.format)
			points, elapsed, err := c.generateJob(ctx, runner, job, opts.points, path, opts.format)
			if err != nil {
				mu.Lock()
				printError("%s", job)
				mu.Unlock()
				return fmt.Errorf("%s: %w", job, err)
			}

			mu.Lock()
			defer mu.Unlock()
			total += points
			printSuccess("%s %s", job, StyleDim.Render(fmt.Sprintf("%d points, %s", points, elapsed.Round(time.Millisecond))))
			printFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d presets, %d points", len(jobs), total))
	return nil
}

func (c *CLI) generateJob(ctx context.Context, runner *pipeline.Runner, job batchJob, n int, path, format string) (int, time.Duration, error) {
	var d pkgio.Dump
	var elapsed time.Duration

	switch job.engine {
	case pipeline.EngineIFS:
		res, err := runner.RunIFS(ctx, pipeline.IFSOptions{Preset: job.name, N: n, Seed: c.Config.Seed, Logger: c.Logger})
		if err != nil {
			return 0, 0, err
		}
		seq := res.Sequence
		d = pkgio.Dump{RunID: res.RunID, Engine: res.Engine, Config: seq.Config, Points: seq.Points, Choices: seq.Choices}
		elapsed = res.Duration
	default:
		res, err := runner.RunChaos(ctx, pipeline.ChaosOptions{Preset: job.name, N: n, Seed: c.Config.Seed, Logger: c.Logger})
		if err != nil {
			return 0, 0, err
		}
		seq := res.Sequence
		d = pkgio.Dump{RunID: res.RunID, Engine: res.Engine, Config: seq.Config, Points: seq.Points, Choices: seq.Choices}
		elapsed = res.Duration
	}

	if err := pkgio.Export(d, path, format); err != nil {
		return 0, 0, err
	}
	return len(d.Points), elapsed, nil
}

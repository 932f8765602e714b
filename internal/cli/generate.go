package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/chaostower/pkg/io"
	"github.com/matzehuels/chaostower/pkg/pipeline"
)

// outputOpts holds the flags shared by every command that writes points.
type outputOpts struct {
	output  string // output file; stdout when empty
	format  string // json or csv; inferred from output when empty
	noCache bool   // bypass the sequence cache
}

func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: json, csv (default: from file extension or config)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the sequence cache")
}

// resolveFormat picks the explicit format, then the output extension, then the
// configured default.
func (o *outputOpts) resolveFormat(fallback string) (string, error) {
	format := o.format
	if format == "" {
		switch strings.ToLower(filepath.Ext(o.output)) {
		case ".csv":
			format = pipeline.FormatCSV
		case ".json":
			format = pipeline.FormatJSON
		default:
			format = fallback
		}
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// presetFlags maps the chaos flags a preset can fill to their option fields.
var presetFlags = map[string]string{
	"polygon":   "polygon",
	"jump":      "jump",
	"midpoints": "midpoints",
	"center":    "center",
	"window":    "window",
	"offset":    "offset",
	"symmetric": "symmetric",
	"points":    "n",
}

// markExplicit keeps every flag given on the command line, zero values
// included, from being replaced by the preset.
func markExplicit(cmd *cobra.Command, opts *pipeline.ChaosOptions) {
	for flag, field := range presetFlags {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			opts.MarkExplicit(field)
		}
	}
}

// runStats summarises a finished run for display.
type runStats struct {
	points   int
	decision string
	cached   bool
	elapsed  time.Duration
}

// emit writes d to the output file, or to stdout when none is set.
func (c *CLI) emit(stdout io.Writer, d pkgio.Dump, out outputOpts, stats runStats) error {
	format, err := out.resolveFormat(c.Config.Format)
	if err != nil {
		return err
	}
	if out.output == "" {
		c.Logger.Debug("writing points", "format", format, "points", stats.points, "decision", stats.decision)
		return pkgio.Write(stdout, d, format)
	}
	if err := pkgio.Export(d, out.output, format); err != nil {
		return err
	}
	printSuccess("Generated %s", d.Engine)
	printRunStats(stats.points, stats.decision, stats.cached, stats.elapsed)
	printFile(out.output)
	return nil
}

// =============================================================================
// chaos
// =============================================================================

func (c *CLI) chaosCommand() *cobra.Command {
	var opts pipeline.ChaosOptions
	var out outputOpts

	cmd := &cobra.Command{
		Use:   "chaos",
		Short: "Generate points with the chaos game",
		Long: `Generate points with the chaos game.

Starting from (start-x, start-y), each step moves the point the jump fraction of
the way toward a randomly chosen vertex. A selection rule can forbid vertices
depending on the last --window choices: the vertex --offset places after each of
them is excluded (and the one --offset places before with --symmetric).`,
		Example: `  chaostower chaos --preset sierpc -n 50000 -o carpet.csv
  chaostower chaos --polygon 4 --window 1 --offset 2 > tsquare.json
  chaostower chaos --polygon 5 --jump 0.618 --center`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markExplicit(cmd, &opts)
			if opts.Seed == 0 {
				opts.Seed = c.Config.Seed
			}
			return c.runChaos(cmd.Context(), cmd.OutOrStdout(), opts, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Preset, "preset", "p", "", "start from a named preset (see 'chaostower presets')")
	f.IntVar(&opts.Polygon, "polygon", 0, "number of polygon vertices (default 3)")
	f.Float64Var(&opts.Radius, "radius", 0, "polygon circumradius (default 1)")
	f.BoolVar(&opts.Uncentered, "uncentered", false, "place the first vertex at the origin instead of centering the polygon")
	f.StringVar(&opts.Jump, "jump", "", `jump fraction, e.g. "1/2" or "0.618" (default 1/2)`)
	f.BoolVar(&opts.Midpoints, "midpoints", false, "add edge midpoints as vertices")
	f.BoolVar(&opts.Center, "center", false, "add the polygon center as a vertex")
	f.IntVar(&opts.Window, "window", 0, "number of previous choices the rule looks at (0: no rule)")
	f.IntVar(&opts.Offset, "offset", 0, "vertex offset excluded after each remembered choice")
	f.BoolVar(&opts.Symmetric, "symmetric", false, "exclude the offset in both directions")
	f.IntVarP(&opts.N, "points", "n", 0, "number of points including the start point (default: preset or 10000)")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed (default: config or 42)")
	f.Float64Var(&opts.StartX, "start-x", 0, "start point x")
	f.Float64Var(&opts.StartY, "start-y", 0, "start point y")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore any cached sequence")
	out.register(cmd)

	cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return c.runnerPresets().ChaosNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) runChaos(ctx context.Context, stdout io.Writer, opts pipeline.ChaosOptions, out outputOpts) error {
	if _, err := out.resolveFormat(c.Config.Format); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := c.startSpinner(ctx, out, "Playing the chaos game...")
	res, err := runner.RunChaos(ctx, opts)
	spinner.Stop()
	if spinner.Cancelled() {
		printWarning("Interrupted, nothing written")
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	seq := res.Sequence
	return c.emit(stdout, pkgio.Dump{
		RunID:   res.RunID,
		Engine:  res.Engine,
		Config:  seq.Config,
		Points:  seq.Points,
		Choices: seq.Choices,
	}, out, runStats{seq.Len(), res.Decision.String(), res.CacheHit, res.Duration})
}

// =============================================================================
// ifs
// =============================================================================

func (c *CLI) ifsCommand() *cobra.Command {
	var opts pipeline.IFSOptions
	var out outputOpts
	var mapsFile string

	cmd := &cobra.Command{
		Use:   "ifs",
		Short: "Generate points with an iterated function system",
		Long: `Generate points with an iterated function system.

Each step applies one affine map, chosen with the given probabilities, to the
current point. Maps are six coefficients each, separated by newlines or
semicolons. With --mode regular a map "a b c d e f" sends (x, y) to
(a·x + b·y + c, d·x + e·y + f); with --mode alternate to
(a·x + b·y + e, c·x + d·y + f).`,
		Example: `  chaostower ifs --preset fern -n 200000 -o fern.csv
  chaostower ifs --maps "0.5 0 0 0 0.5 0; 0.5 0 0.5 0 0.5 0; 0.5 0 0.25 0 0.5 0.5" --probabilities "1/3 1/3 1/3"
  chaostower ifs --maps-file dragon.txt --probabilities "0.787473 0.212527" --mode alternate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mapsFile != "" {
				if opts.Maps != "" {
					return fmt.Errorf("--maps and --maps-file are mutually exclusive")
				}
				data, err := os.ReadFile(mapsFile)
				if err != nil {
					return fmt.Errorf("read maps: %w", err)
				}
				opts.Maps = string(data)
			}
			if opts.Seed == 0 {
				opts.Seed = c.Config.Seed
			}
			return c.runIFS(cmd.Context(), cmd.OutOrStdout(), opts, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Preset, "preset", "p", "", "start from a named preset (see 'chaostower presets')")
	f.StringVar(&opts.Maps, "maps", "", "affine maps, six coefficients each")
	f.StringVar(&mapsFile, "maps-file", "", "read affine maps from a file")
	f.StringVar(&opts.Probabilities, "probabilities", "", "one probability per map")
	f.StringVar(&opts.Mode, "mode", "", "coefficient ordering: regular, alternate (default regular)")
	f.IntVarP(&opts.N, "points", "n", 0, "number of points including the start point (default: preset or 100000)")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed (default: config or 42)")
	f.Float64Var(&opts.StartX, "start-x", 0, "start point x")
	f.Float64Var(&opts.StartY, "start-y", 0, "start point y")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore any cached sequence")
	out.register(cmd)

	cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return c.runnerPresets().IFSNames(), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"regular", "alternate"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) runIFS(ctx context.Context, stdout io.Writer, opts pipeline.IFSOptions, out outputOpts) error {
	if _, err := out.resolveFormat(c.Config.Format); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := c.startSpinner(ctx, out, "Iterating maps...")
	res, err := runner.RunIFS(ctx, opts)
	spinner.Stop()
	if spinner.Cancelled() {
		printWarning("Interrupted, nothing written")
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	seq := res.Sequence
	return c.emit(stdout, pkgio.Dump{
		RunID:   res.RunID,
		Engine:  res.Engine,
		Config:  seq.Config,
		Points:  seq.Points,
		Choices: seq.Choices,
	}, out, runStats{seq.Len(), res.Decision.String(), res.CacheHit, res.Duration})
}

// startSpinner shows a spinner while writing to a file. With output on stdout
// it returns a spinner that was never started.
func (c *CLI) startSpinner(ctx context.Context, out outputOpts, msg string) *Spinner {
	s := newSpinner(ctx, msg)
	if out.output != "" {
		s.Start()
	}
	return s
}

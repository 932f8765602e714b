package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaostower/pkg/pipeline"
)

// ruleCommand draws the transition graph of a selection rule: an edge i -> j
// means vertex j may follow vertex i.
func (c *CLI) ruleCommand() *cobra.Command {
	var opts pipeline.ChaosOptions
	var output, format string

	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Draw the transition graph of a selection rule",
		Long: `Draw which vertex may follow which under a selection rule.

The graph only depends on the vertex count and the rule (window, offset,
symmetric), so jump and seed flags are not needed. Output is Graphviz DOT, or
SVG when --format svg is given or the output file ends in .svg.`,
		Example: `  chaostower rule --polygon 4 --window 1 --offset 2
  chaostower rule --preset webs -o webs.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = pipeline.GraphFormatDOT
				if strings.EqualFold(filepath.Ext(output), ".svg") {
					format = pipeline.GraphFormatSVG
				}
			}

			markExplicit(cmd, &opts)
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			data, err := runner.RuleGraph(cmd.Context(), opts, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered rule graph")
			printFile(output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Preset, "preset", "p", "", "take the vertex layout and rule from a chaos preset")
	f.IntVar(&opts.Polygon, "polygon", 0, "number of polygon vertices (default 3)")
	f.BoolVar(&opts.Midpoints, "midpoints", false, "add edge midpoints as vertices")
	f.BoolVar(&opts.Center, "center", false, "add the polygon center as a vertex")
	f.IntVar(&opts.Window, "window", 0, "number of previous choices the rule looks at")
	f.IntVar(&opts.Offset, "offset", 0, "vertex offset excluded after each remembered choice")
	f.BoolVar(&opts.Symmetric, "symmetric", false, "exclude the offset in both directions")
	f.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	f.StringVarP(&format, "format", "f", "", "output format: dot, svg")

	return cmd
}

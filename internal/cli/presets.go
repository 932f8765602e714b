package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaostower/pkg/pipeline"
)

// presetsCommand lists presets, or lets the user pick one and generates it.
func (c *CLI) presetsCommand() *cobra.Command {
	var pick bool
	var n int
	var out outputOpts

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List presets, or pick one interactively and generate it",
		Long: `List the built-in presets and those defined in the config file.

With --pick, an interactive list opens; the chosen preset is generated and
written to <name>.<format> unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := presetEntries(c.runnerPresets())
			if !pick {
				fmt.Fprintln(cmd.OutOrStdout(), presetTable(entries, 0, -1).Render())
				printNextStep("Generate one", "chaostower chaos --preset sierpc -o sierpc.csv")
				return nil
			}

			final, err := tea.NewProgram(NewPresetListModel(entries)).Run()
			if err != nil {
				return fmt.Errorf("preset picker: %w", err)
			}
			sel := final.(PresetListModel).Selected
			if sel == nil {
				printInfo("No preset selected")
				return nil
			}
			return c.generatePreset(cmd, *sel, n, out)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "pick a preset interactively and generate it")
	cmd.Flags().IntVarP(&n, "points", "n", 0, "number of points (default: the preset's)")
	out.register(cmd)
	return cmd
}

func (c *CLI) generatePreset(cmd *cobra.Command, e presetEntry, n int, out outputOpts) error {
	if out.output == "" {
		format, err := out.resolveFormat(c.Config.Format)
		if err != nil {
			return err
		}
		out.output = e.Name + "." + format
		out.format = format
	}
	ctx, stdout := cmd.Context(), cmd.OutOrStdout()
	if e.Engine == pipeline.EngineIFS {
		return c.runIFS(ctx, stdout, pipeline.IFSOptions{Preset: e.Name, N: n, Seed: c.Config.Seed}, out)
	}
	return c.runChaos(ctx, stdout, pipeline.ChaosOptions{Preset: e.Name, N: n, Seed: c.Config.Seed}, out)
}

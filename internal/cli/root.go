package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaostower/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded in PersistentPreRunE; callers that wrap the pre-run
// hook must call the original.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Chaostower draws fractals with the chaos game and iterated function systems",
		Long: `Chaostower generates point sets that approximate self-similar fractals.

The chaos game jumps toward randomly chosen polygon vertices, optionally
constrained by a selection rule. An iterated function system applies randomly
chosen affine maps. Sequences are cached, so asking for more or fewer points
with the same parameters extends or truncates the previous run.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chaostower/config.toml)")

	root.AddCommand(c.chaosCommand())
	root.AddCommand(c.ifsCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.ruleCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. A missing default file is not an error; a
// missing file named with --config is.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		var err error
		if path, err = configFile(); err != nil {
			return nil
		}
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path, "cache", cfg.Cache.Backend,
		"chaos_presets", len(cfg.Chaos), "ifs_presets", len(cfg.IFS))
	return nil
}

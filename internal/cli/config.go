package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chaostower/pkg/cache"
	"github.com/matzehuels/chaostower/pkg/pipeline"
	"github.com/matzehuels/chaostower/pkg/presets"
	"github.com/matzehuels/chaostower/pkg/server"
)

// Config is the user configuration file:
//
//	seed = 7
//	format = "csv"
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":9090"
//
//	[[chaos_preset]]
//	name = "pentaflake"
//	polygon = 5
//	jump = "0.618"
//	center = true
//
// User presets replace built-in presets of the same name.
type Config struct {
	Seed   uint64        `toml:"seed"`
	Format string        `toml:"format"`
	Cache  cache.Config  `toml:"cache"`
	Server server.Config `toml:"server"`

	presets.Set
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Seed:   pipeline.DefaultSeed,
		Format: pipeline.FormatJSON,
		Cache:  cache.Config{Backend: cache.BackendFile},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults
// unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := pipeline.ValidateFormat(cfg.Format); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Set.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

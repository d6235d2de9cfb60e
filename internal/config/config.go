// Package config loads engine tuning knobs from an optional TOML file,
// falling back to compiled-in defaults when the file is absent or a field
// is omitted. The UCI front-end does not handle setoption, so these values
// are not changed at runtime; this package only supplies what the engine
// starts with.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's startup tuning knobs.
type Config struct {
	HashSizeMB int    `toml:"hash_size_mb"`
	MaxDepth   int    `toml:"max_depth"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the compiled-in configuration used when no file is
// supplied.
func Default() Config {
	return Config{
		HashSizeMB: 64,
		MaxDepth:   64,
		LogLevel:   "info",
	}
}

// Load reads path as TOML, starting from Default() so a partial file only
// overrides the fields it sets. A missing file is not an error; it yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

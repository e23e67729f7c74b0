package device

import "github.com/BurntSushi/toml"

// Config holds ambient, non-functional knobs: logging verbosity,
// whether unrecognised-format/render-state diagnostics are emitted,
// and the input-layout cache capacity. None of these gate a
// functional code path; a nil *Config is equivalent to
// DefaultConfig().
type Config struct {
	Quiet              bool `toml:"quiet"`
	LayoutCacheCapacity int  `toml:"layout_cache_capacity"`
}

// DefaultConfig returns the configuration a freshly created Device
// uses when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Quiet:               false,
		LayoutCacheCapacity: 16,
	}
}

// LoadConfig reads a Config from a TOML file at path. Fields absent
// from the file keep DefaultConfig's values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config loads schemacompress's own compression profile —
// depth, context window, timeout, and the rest of compress.Config —
// from a file on disk, grounded on the teacher's internal/config
// LoadLocalConfig (direct yaml.v3 unmarshal). A missing file yields a
// zero Profile; any other read or parse failure is returned as an
// error.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/schemacompress/internal/compress"
)

// Profile is the on-disk shape of a compression profile file. Field
// names mirror compress.Config; it is decoded separately so the wire
// format (snake_case keys) stays stable even if compress.Config's Go
// field names change.
type Profile struct {
	Depth          int      `yaml:"depth" toml:"depth"`
	ContextK       int      `yaml:"context_k" toml:"context_k"`
	TimeoutSeconds int      `yaml:"timeout_seconds" toml:"timeout_seconds"`
	UseMIPStart    bool     `yaml:"use_mip_start" toml:"use_mip_start"`
	UseHints       bool     `yaml:"use_hints" toml:"use_hints"`
	UseMerge       bool     `yaml:"use_merge" toml:"use_merge"`
	UpperBound     int      `yaml:"upper_bound" toml:"upper_bound"`
	Split          bool     `yaml:"split" toml:"split"`
	ModelName      string   `yaml:"model" toml:"model"`
	ShortcutPool   []string `yaml:"shortcut_pool" toml:"shortcut_pool"`
}

// ToCompressConfig converts a decoded Profile into a compress.Config.
// Depth, ContextK, TimeoutSeconds, ModelName and ShortcutPool fall back
// to compress.DefaultConfig's values when left at their zero value;
// UseMIPStart, UseHints, UseMerge, UpperBound and Split are copied as
// they are, so omitting use_mip_start or use_hints turns them off.
func (p Profile) ToCompressConfig() compress.Config {
	cfg := compress.DefaultConfig()
	if p.Depth > 0 {
		cfg.Depth = p.Depth
	}
	if p.ContextK > 0 {
		cfg.ContextK = p.ContextK
	}
	if p.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = p.TimeoutSeconds
	}
	cfg.UseMIPStart = p.UseMIPStart
	cfg.UseHints = p.UseHints
	cfg.UseMerge = p.UseMerge
	cfg.UpperBound = p.UpperBound
	cfg.Split = p.Split
	if p.ModelName != "" {
		cfg.ModelName = p.ModelName
	}
	if len(p.ShortcutPool) > 0 {
		cfg.ShortcutPool = p.ShortcutPool
	}
	return cfg
}

// Load reads a profile from path, picking yaml.v3 or BurntSushi/toml
// by extension (.yaml/.yml vs .toml). Returns a zero Profile (not an
// error) when the file is absent, matching LoadLocalConfig's
// degrade-to-defaults behavior — a missing profile just means "use
// compress.DefaultConfig".
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied profile path
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, err
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &p); err != nil {
			return Profile{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

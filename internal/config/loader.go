package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"artboard-wallpaper/internal/utils"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "config.yaml"

// LoadFromPath reads one YAML file over the defaults. Unknown keys are errors.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path when given. Otherwise it looks for config.yaml in the
// working directory, ~/.config/artboard-wallpaper and the assets directory,
// falling back to the defaults when none exists.
func Load(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := LoadFromPath(path)
		return cfg, path, err
	}
	for _, candidate := range utils.ConfigSearchPaths(DefaultFileName) {
		if _, err := os.Stat(candidate); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				utils.Warn("Skipping config %s: %v", candidate, err)
			}
			continue
		}
		cfg, err := LoadFromPath(candidate)
		return cfg, candidate, err
	}
	return DefaultConfig(), "", nil
}

// Marshal renders the config as YAML, for -dump-config.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

package cmd

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config is enotok.yaml's shape, loaded from the scanned directory. Unlike
// the teacher's sqlcode.yaml (which LoadConfig treats as required, since a
// database target has to come from somewhere), a missing enotok.yaml is not
// an error: tokenizing has sensible zero-value defaults.
type Config struct {
	ZeroIndexed bool   `yaml:"zero_indexed"`
	Locale      string `yaml:"locale"`
}

// LoadConfig reads enotok.yaml from dir, returning the zero Config
// (1-based indexing, "en" locale resolved downstream) when the file doesn't
// exist.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	configFilename := path.Join(dir, "enotok.yaml")
	data, err := os.ReadFile(configFilename)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", configFilename, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", configFilename, err)
	}
	return cfg, nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for proftool.
type FileConfig struct {
	// Checks lists directives to warn about when a profile lacks them,
	// using directive names or flag spellings (e.g. "private-dev").
	Checks       []string `yaml:"checks"`
	StrictPrefix *bool    `yaml:"strict_prefix"`
	MaxDepth     *int     `yaml:"max_depth"`
	IncludeDirs  []string `yaml:"include_dirs"`
	Exclude      *string  `yaml:"exclude"`
	NoColor      *bool    `yaml:"no_color"`
	Format       *string  `yaml:"format"`
	LogLevel     *string  `yaml:"log_level"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .proftool.yml/.yaml and proftool.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".proftool.yml", ".proftool.yaml", "proftool.yml", "proftool.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "proftool", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetFormat returns the configured output format or empty string.
func (fc FileConfig) GetFormat() string {
	if fc.Format == nil {
		return ""
	}
	return *fc.Format
}

// GetLogLevel returns the configured log level or empty string.
func (fc FileConfig) GetLogLevel() string {
	if fc.LogLevel == nil {
		return ""
	}
	return *fc.LogLevel
}

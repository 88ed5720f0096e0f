package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config represents the optional YAML defaults file. Values apply only to
// flags not given on the command line.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Norm  NormConfig  `yaml:"norm"`
	Build BuildConfig `yaml:"build"`
}

// NormConfig holds defaults for the norm command.
type NormConfig struct {
	TreeName       string `yaml:"tree_name"`
	DropAltWeights *bool  `yaml:"drop_alt_weights"`
	Output         string `yaml:"output"`
}

// BuildConfig holds defaults for the build command.
type BuildConfig struct {
	Descriptions string `yaml:"descriptions"`
	Norm         string `yaml:"norm"`
	Output       string `yaml:"output"`
}

// LoadConfig parses a defaults file with strict field checking, so that typos
// are reported instead of silently ignored.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// applyString sets *dst to value when value is non-empty and the flag was not
// given explicitly.
func applyString(flags *pflag.FlagSet, name string, dst *string, value string) {
	if value != "" && !flags.Changed(name) {
		*dst = value
	}
}

func applyBool(flags *pflag.FlagSet, name string, dst *bool, value *bool) {
	if value != nil && !flags.Changed(name) {
		*dst = *value
	}
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional on-disk configuration (YAML). Flags given on the
// command line win over values from the file.
type FileConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Energy      string `yaml:"energy"`
	Reading     string `yaml:"reading"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Output      string `yaml:"output"`
	DumpDir     string `yaml:"dump_dir"`
	MetricsFile string `yaml:"metrics_file"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c FileConfig
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

// flagValues maps flag names to the file's values.
func (c *FileConfig) flagValues() map[string]string {
	return map[string]string{
		"apikey":  c.APIKey,
		"baseURL": c.BaseURL,
		"energy":  c.Energy,
		"reading": c.Reading,
		"start":   c.Start,
		"end":     c.End,
		"out":     c.Output,
		"dump":    c.DumpDir,
		"metrics": c.MetricsFile,
	}
}

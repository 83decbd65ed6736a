// Package config loads the optional .ocompiler.yaml project file
// (SPEC_FULL.md §3.1) so ocompilerc's source/output-dir flags are
// optional rather than required on every invocation.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Project holds the defaults an .ocompiler.yaml file can supply.
type Project struct {
	Source    string `yaml:"source"`
	OutputDir string `yaml:"output_dir"`
}

const defaultOutputDir = "out"

// Load reads path if it exists, returning a zero-value Project (with
// OutputDir defaulted) when it does not — the file is entirely optional.
func Load(path string) (*Project, error) {
	p := &Project{OutputDir: defaultOutputDir}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	if p.OutputDir == "" {
		p.OutputDir = defaultOutputDir
	}
	return p, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the structure of the optional sync.yaml file. The
// file lets a deployment move the snapshot and asset directories without
// touching the environment.
type FileConfig struct {
	Output struct {
		DataDir  string `yaml:"data_dir"`
		AssetDir string `yaml:"asset_dir"`
	} `yaml:"output"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfigFile loads the config file at the given path. An empty path and
// a missing file both return nil without error; a file that exists but
// cannot be parsed is an error.
func LoadConfigFile(path string) (*FileConfig, error) {
	if path == "" {
		path = "sync.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // file doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &fc, nil
}

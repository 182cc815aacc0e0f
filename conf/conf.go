// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conf loads the engine's declarative configuration from
// YAML: the asset roots that seed the filesystem whitelist and the
// runtime knobs of the tools built on the loader.
package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the engine configuration.
type Config struct {
	// AssetRoots are directories enumerated into the whitelist at
	// startup. Paths are relative to the working directory.
	AssetRoots []string `yaml:"assetRoots"`

	// LogLevel is one of debug|info|warn|error|fatal.
	LogLevel string `yaml:"logLevel"`

	// DefaultScene names the scene to instantiate when an asset
	// declares more than one.
	DefaultScene string `yaml:"defaultScene"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {

	return &Config{
		LogLevel:     "error",
		DefaultScene: "Scene",
	}
}

// Parse decodes a configuration document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

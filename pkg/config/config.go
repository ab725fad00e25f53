// Copyright 2025 Pylot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"
)

const maxRecentWorkspaces = 10

type CLIConfig struct {
	DefaultInterpreter string   `yaml:"default_interpreter"`
	RecentWorkspaces   []string `yaml:"recent_workspaces"`
	// absent from YAML
	hasPersisted bool
}

// LoadOrCreate loads the config file from ~/.pylot/cli-config.yaml.
// If it doesn't exist, it'll return an empty config file.
func LoadOrCreate() (*CLIConfig, error) {
	configPath, err := getConfigLocation()
	if err != nil {
		return nil, err
	}

	c := &CLIConfig{}
	if s, err := os.Stat(configPath); os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return nil, err
	} else if s.Mode().Perm()&0077 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: config file %s should have permissions %o\n", configPath, 0600)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(content, c); err != nil {
		return nil, err
	}
	c.hasPersisted = true

	return c, nil
}

// AddRecentWorkspace records dir as the most recently launched workspace,
// deduplicating and keeping the list bounded.
func (c *CLIConfig) AddRecentWorkspace(dir string) {
	recent := []string{dir}
	for _, w := range c.RecentWorkspaces {
		if w != dir {
			recent = append(recent, w)
		}
	}
	if len(recent) > maxRecentWorkspaces {
		recent = recent[:maxRecentWorkspaces]
	}
	c.RecentWorkspaces = recent
}

func (c *CLIConfig) HasRecentWorkspace(dir string) bool {
	return slices.Contains(c.RecentWorkspaces, dir)
}

func (c *CLIConfig) PersistIfNeeded() error {
	if c.DefaultInterpreter == "" && len(c.RecentWorkspaces) == 0 && !c.hasPersisted {
		// doesn't need to be persisted
		return nil
	}

	configPath, err := getConfigLocation()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(path.Dir(configPath), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err = os.WriteFile(configPath, data, 0600); err != nil {
		return err
	}
	c.hasPersisted = true
	return nil
}

func getConfigLocation() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return path.Join(dir, ".pylot", "cli-config.yaml"), nil
}

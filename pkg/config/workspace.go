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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pylot-dev/pylot/pkg/logger"
)

const (
	PylotTOMLFile = "pylot.toml"

	DefaultSrcDir   = "src"
	DefaultVenvDir  = "env"
	DefaultManifest = "requirements.txt"
)

var (
	ErrInvalidConfig = errors.New("invalid workspace configuration")
)

// WorkspaceConfig is the per-workspace pylot.toml. Every field has a
// working default; the file only needs to exist when the defaults are
// wrong for the project.
type WorkspaceConfig struct {
	App    WorkspaceAppConfig    `toml:"app"`
	Python WorkspacePythonConfig `toml:"python"`
	Env    WorkspaceEnvConfig    `toml:"env"`
}

type WorkspaceAppConfig struct {
	// Module is passed to `python -m`. Empty means infer from the
	// source directory layout at load time.
	Module string `toml:"module"`
	SrcDir string `toml:"src_dir"`
}

type WorkspacePythonConfig struct {
	Interpreter string `toml:"interpreter"`
	VenvDir     string `toml:"venv_dir"`
	Manifest    string `toml:"manifest"`
	// MinVersion is a SemVer constraint such as ">= 3.9", checked
	// against the interpreter before launch when set.
	MinVersion string `toml:"min_version"`
}

type WorkspaceEnvConfig struct {
	DevMode bool              `toml:"dev_mode"`
	Vars    map[string]string `toml:"vars"`
}

func DefaultWorkspaceConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		App: WorkspaceAppConfig{
			SrcDir: DefaultSrcDir,
		},
		Python: WorkspacePythonConfig{
			VenvDir:  DefaultVenvDir,
			Manifest: DefaultManifest,
		},
		Env: WorkspaceEnvConfig{
			DevMode: true,
		},
	}
}

// LoadWorkspace reads tomlFileName from dir, decoding it over the default
// configuration so absent keys keep their defaults. A missing file yields
// the defaults with exists=false; a file that cannot be decoded is an
// ErrInvalidConfig.
func LoadWorkspace(dir, tomlFileName string) (*WorkspaceConfig, bool, error) {
	logger.Debugw("loading workspace configuration", "dir", dir, "file", tomlFileName)
	cfg := DefaultWorkspaceConfig()

	tomlFile := filepath.Join(dir, tomlFileName)
	exists := true
	if _, err := os.Stat(tomlFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		exists = false
	} else {
		if _, err := toml.DecodeFile(tomlFile, cfg); err != nil {
			return nil, exists, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, tomlFileName, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, exists, err
	}

	if cfg.App.Module == "" {
		cfg.App.Module = InferModule(dir, cfg.App.SrcDir)
	}

	return cfg, exists, nil
}

func (c *WorkspaceConfig) validate() error {
	if filepath.IsAbs(c.App.SrcDir) {
		return fmt.Errorf("%w: app.src_dir must be workspace-relative", ErrInvalidConfig)
	}
	if filepath.IsAbs(c.Python.VenvDir) {
		return fmt.Errorf("%w: python.venv_dir must be workspace-relative", ErrInvalidConfig)
	}
	for key := range c.Env.Vars {
		if key == "" || strings.ContainsAny(key, "= \t") {
			return fmt.Errorf("%w: invalid env var name %q", ErrInvalidConfig, key)
		}
	}
	return nil
}

// AppDir is the directory the application is launched from, relative to
// the workspace root.
func (c *WorkspaceConfig) AppDir() string {
	return filepath.Join(c.App.SrcDir, c.App.Module)
}

// InferModule guesses the launchable module when pylot.toml doesn't name
// one: if the source directory holds exactly one package-looking
// subdirectory, that's the module. Ambiguity yields an empty string and
// launch will refuse until the module is configured.
func InferModule(dir, srcDir string) string {
	entries, err := os.ReadDir(filepath.Join(dir, srcDir))
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if strings.HasSuffix(name, ".egg-info") || name == "__pycache__" {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return ""
}

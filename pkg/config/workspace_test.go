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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWorkspaceDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, exists, err := LoadWorkspace(dir, PylotTOMLFile)
	if err != nil {
		t.Fatalf("LoadWorkspace: %v", err)
	}
	if exists {
		t.Error("no file was written, exists should be false")
	}
	if cfg.App.SrcDir != DefaultSrcDir {
		t.Errorf("src_dir = %q, want %q", cfg.App.SrcDir, DefaultSrcDir)
	}
	if cfg.Python.VenvDir != DefaultVenvDir {
		t.Errorf("venv_dir = %q, want %q", cfg.Python.VenvDir, DefaultVenvDir)
	}
	if cfg.Python.Manifest != DefaultManifest {
		t.Errorf("manifest = %q, want %q", cfg.Python.Manifest, DefaultManifest)
	}
	if !cfg.Env.DevMode {
		t.Error("dev_mode should default to true")
	}
}

func TestLoadWorkspaceOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
[app]
module = "myapp"
src_dir = "lib"

[python]
venv_dir = ".venv"
min_version = ">= 3.10"

[env]
dev_mode = false

[env.vars]
GREETING = "hello"
`
	if err := os.WriteFile(filepath.Join(dir, PylotTOMLFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, exists, err := LoadWorkspace(dir, PylotTOMLFile)
	if err != nil {
		t.Fatalf("LoadWorkspace: %v", err)
	}
	if !exists {
		t.Error("exists should be true")
	}
	if cfg.App.Module != "myapp" {
		t.Errorf("module = %q, want myapp", cfg.App.Module)
	}
	if cfg.App.SrcDir != "lib" {
		t.Errorf("src_dir = %q, want lib", cfg.App.SrcDir)
	}
	if cfg.Python.VenvDir != ".venv" {
		t.Errorf("venv_dir = %q, want .venv", cfg.Python.VenvDir)
	}
	// absent keys keep their defaults
	if cfg.Python.Manifest != DefaultManifest {
		t.Errorf("manifest = %q, want default %q", cfg.Python.Manifest, DefaultManifest)
	}
	if cfg.Env.DevMode {
		t.Error("dev_mode = true, want false")
	}
	if cfg.Env.Vars["GREETING"] != "hello" {
		t.Errorf("vars = %v, want GREETING=hello", cfg.Env.Vars)
	}
	if got, want := cfg.AppDir(), filepath.Join("lib", "myapp"); got != want {
		t.Errorf("AppDir = %q, want %q", got, want)
	}
}

func TestLoadWorkspaceInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PylotTOMLFile), []byte("[app\nmodule="), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadWorkspace(dir, PylotTOMLFile)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadWorkspaceRejectsAbsoluteDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PylotTOMLFile), []byte("[app]\nsrc_dir = \"/etc\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadWorkspace(dir, PylotTOMLFile)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestInferModule(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		expected string
	}{
		{
			name:     "single package",
			dirs:     []string{"src/myapp"},
			expected: "myapp",
		},
		{
			name:     "noise directories are ignored",
			dirs:     []string{"src/myapp", "src/__pycache__", "src/.cache", "src/myapp.egg-info"},
			expected: "myapp",
		},
		{
			name:     "ambiguous",
			dirs:     []string{"src/one", "src/two"},
			expected: "",
		},
		{
			name:     "no src dir",
			dirs:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, d := range tt.dirs {
				if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
					t.Fatal(err)
				}
			}
			if got := InferModule(dir, "src"); got != tt.expected {
				t.Errorf("InferModule = %q, want %q", got, tt.expected)
			}
		})
	}
}

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
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	} else {
		t.Setenv("HOME", home)
	}
	return home
}

func TestLoadOrCreateWithoutFile(t *testing.T) {
	setTestHome(t)

	c, err := LoadOrCreate()
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if c.DefaultInterpreter != "" || len(c.RecentWorkspaces) != 0 {
		t.Errorf("expected an empty config, got %+v", c)
	}
}

func TestPersistEmptyConfigIsNoop(t *testing.T) {
	home := setTestHome(t)

	c, err := LoadOrCreate()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.PersistIfNeeded(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(home, ".pylot")); !os.IsNotExist(err) {
		t.Error("an empty config should not be written to disk")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	home := setTestHome(t)

	c, err := LoadOrCreate()
	if err != nil {
		t.Fatal(err)
	}
	c.DefaultInterpreter = "python3.12"
	c.AddRecentWorkspace("/work/app")
	if err := c.PersistIfNeeded(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(home, ".pylot", "cli-config.yaml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		t.Errorf("config should not be group/other readable, got %o", info.Mode().Perm())
	}

	loaded, err := LoadOrCreate()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultInterpreter != "python3.12" {
		t.Errorf("default_interpreter = %q, want python3.12", loaded.DefaultInterpreter)
	}
	if !loaded.HasRecentWorkspace("/work/app") {
		t.Errorf("recent workspaces = %v, want /work/app", loaded.RecentWorkspaces)
	}
}

func TestAddRecentWorkspace(t *testing.T) {
	c := &CLIConfig{}

	c.AddRecentWorkspace("/a")
	c.AddRecentWorkspace("/b")
	c.AddRecentWorkspace("/a")

	if len(c.RecentWorkspaces) != 2 {
		t.Fatalf("expected 2 entries, got %v", c.RecentWorkspaces)
	}
	if c.RecentWorkspaces[0] != "/a" || c.RecentWorkspaces[1] != "/b" {
		t.Errorf("expected most-recent-first dedupe, got %v", c.RecentWorkspaces)
	}

	for i := 0; i < maxRecentWorkspaces*2; i++ {
		c.AddRecentWorkspace(filepath.Join("/w", string(rune('a'+i))))
	}
	if len(c.RecentWorkspaces) != maxRecentWorkspaces {
		t.Errorf("list should be capped at %d, got %d", maxRecentWorkspaces, len(c.RecentWorkspaces))
	}
}

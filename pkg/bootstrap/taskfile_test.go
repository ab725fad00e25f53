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

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasTask(t *testing.T) {
	dir := t.TempDir()
	content := `version: "3"

tasks:
  install:
    cmds:
      - pip install -r requirements.txt
  dev:
    cmds:
      - python -m myapp
`
	if err := os.WriteFile(filepath.Join(dir, TaskFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if !HasTaskfile(dir) {
		t.Error("taskfile should be found")
	}
	if !HasTask(dir, TaskInstall) {
		t.Error("install task should be found")
	}
	if !HasTask(dir, TaskDev) {
		t.Error("dev task should be found")
	}
	if HasTask(dir, "deploy") {
		t.Error("undefined task should not be found")
	}

	empty := t.TempDir()
	if HasTaskfile(empty) {
		t.Error("empty dir should have no taskfile")
	}
	if HasTask(empty, TaskInstall) {
		t.Error("missing taskfile should have no tasks")
	}
}

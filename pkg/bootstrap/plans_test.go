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
	"context"
	"reflect"
	"testing"

	"github.com/pylot-dev/pylot/pkg/workspace"
)

func TestInstallPlan(t *testing.T) {
	tests := []struct {
		name        string
		projectType workspace.ProjectType
		expected    []string
	}{
		{
			name:        "pip installs from the manifest",
			projectType: workspace.ProjectTypePip,
			expected:    []string{"/venv/bin/python", "-m", "pip", "install", "-r", "requirements.txt"},
		},
		{
			name:        "unknown falls back to pip",
			projectType: workspace.ProjectTypeUnknown,
			expected:    []string{"/venv/bin/python", "-m", "pip", "install", "-r", "requirements.txt"},
		},
		{
			name:        "uv syncs",
			projectType: workspace.ProjectTypeUV,
			expected:    []string{"uv", "sync"},
		},
		{
			name:        "poetry installs",
			projectType: workspace.ProjectTypePoetry,
			expected:    []string{"poetry", "install"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := InstallPlan(tt.projectType, "/venv/bin/python", "requirements.txt")
			if len(plan) != 1 {
				t.Fatalf("expected a single step, got %d", len(plan))
			}
			if !reflect.DeepEqual(plan[0].Argv, tt.expected) {
				t.Errorf("argv = %v, want %v", plan[0].Argv, tt.expected)
			}
		})
	}
}

func TestVenvStep(t *testing.T) {
	step := VenvStep("python3", "env")
	expected := []string{"python3", "-m", "venv", "env"}
	if !reflect.DeepEqual(step.Argv, expected) {
		t.Errorf("argv = %v, want %v", step.Argv, expected)
	}
}

func TestLaunchStep(t *testing.T) {
	step := LaunchStep("/venv/bin/python", "myapp", "src/myapp")
	expected := []string{"/venv/bin/python", "-m", "myapp"}
	if !reflect.DeepEqual(step.Argv, expected) {
		t.Errorf("argv = %v, want %v", step.Argv, expected)
	}
	if step.Dir != "src/myapp" {
		t.Errorf("dir = %q, want src/myapp", step.Dir)
	}
}

func TestUpdateSteps(t *testing.T) {
	if got, want := FetchStep().String(), "git fetch"; got != want {
		t.Errorf("fetch = %q, want %q", got, want)
	}
	if got, want := MergeStep(false).String(), "git merge FETCH_HEAD"; got != want {
		t.Errorf("merge = %q, want %q", got, want)
	}
	if got, want := MergeStep(true).String(), "git merge --ff-only FETCH_HEAD"; got != want {
		t.Errorf("ff-only merge = %q, want %q", got, want)
	}
}

func TestRunStepRejectsEmptyArgv(t *testing.T) {
	r := NewRunner(t.TempDir(), []string{})
	if err := r.RunStep(context.Background(), Step{Title: "noop"}); err == nil {
		t.Error("expected an error for a step with no command")
	}
	if _, err := r.RunStepQuiet(context.Background(), Step{Title: "noop"}); err == nil {
		t.Error("expected an error for a quiet step with no command")
	}
}

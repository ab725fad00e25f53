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
	"path/filepath"

	"github.com/pylot-dev/pylot/pkg/workspace"
)

// VenvStep creates the virtual environment. Callers only issue it when
// the venv directory is absent.
func VenvStep(python, venvDir string) Step {
	return Step{
		Title: "create virtual environment",
		Argv:  []string{python, "-m", "venv", venvDir},
	}
}

// InstallPlan is the dependency installation sequence for the detected
// project tooling. python should already be the venv interpreter when a
// virtual environment is active.
func InstallPlan(p workspace.ProjectType, python, manifest string) Plan {
	switch p {
	case workspace.ProjectTypeUV:
		return Plan{{
			Title: "sync dependencies",
			Argv:  []string{"uv", "sync"},
		}}
	case workspace.ProjectTypePoetry:
		return Plan{{
			Title: "install dependencies",
			Argv:  []string{"poetry", "install"},
		}}
	default:
		return Plan{{
			Title: "install dependencies",
			Argv:  []string{python, "-m", "pip", "install", "-r", manifest},
		}}
	}
}

// LaunchStep runs the application as a module invocation from its
// installation directory.
func LaunchStep(python, module, appDir string) Step {
	return Step{
		Title: "launch " + module,
		Argv:  []string{python, "-m", module},
		Dir:   appDir,
	}
}

// FetchStep and MergeStep form the update path. Merging FETCH_HEAD keeps
// the sequence working on detached or unconfigured branches the same way
// a plain fetch-then-merge does.
func FetchStep() Step {
	return Step{
		Title: "fetch updates",
		Argv:  []string{"git", "fetch"},
	}
}

func MergeStep(ffOnly bool) Step {
	argv := []string{"git", "merge", "FETCH_HEAD"}
	if ffOnly {
		argv = []string{"git", "merge", "--ff-only", "FETCH_HEAD"}
	}
	return Step{
		Title: "merge updates",
		Argv:  argv,
	}
}

func joinIfRelative(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

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

package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/pylot-dev/pylot/pkg/util"
)

type ProjectType string

const (
	ProjectTypePip     ProjectType = "python.pip"
	ProjectTypeUV      ProjectType = "python.uv"
	ProjectTypePoetry  ProjectType = "python.poetry"
	ProjectTypeUnknown ProjectType = "unknown"
)

func (p ProjectType) Tool() string {
	switch p {
	case ProjectTypePip:
		return "pip"
	case ProjectTypeUV:
		return "uv"
	case ProjectTypePoetry:
		return "poetry"
	default:
		return ""
	}
}

// DetectProjectType determines the dependency tooling of a workspace by
// checking for specific configuration/lock files and their content.
func DetectProjectType(dir string) (ProjectType, error) {
	// Lock files are the most definitive indicators, so they win.
	if util.FileExists(dir, "uv.lock") {
		return ProjectTypeUV, nil
	}
	if util.FileExists(dir, "poetry.lock") {
		return ProjectTypePoetry, nil
	}
	// Pipenv and PDM lock files are treated as pip-compatible
	if util.FileExists(dir, "Pipfile.lock") || util.FileExists(dir, "pdm.lock") {
		return ProjectTypePip, nil
	}

	if util.FileExists(dir, "requirements.txt") {
		return ProjectTypePip, nil
	}

	if util.FileExists(dir, "pyproject.toml") {
		data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
		if err == nil {
			var doc map[string]any
			if err := toml.Unmarshal(data, &doc); err == nil {
				if tool, ok := doc["tool"].(map[string]any); ok {
					if _, hasPoetry := tool["poetry"]; hasPoetry {
						return ProjectTypePoetry, nil
					}
					if _, hasUV := tool["uv"]; hasUV {
						return ProjectTypeUV, nil
					}
					if _, hasPdm := tool["pdm"]; hasPdm {
						return ProjectTypePip, nil
					}
					if _, hasHatch := tool["hatch"]; hasHatch {
						return ProjectTypePip, nil
					}
				}
				if isUVByContent(string(data)) {
					return ProjectTypeUV, nil
				}
			}
		}
		// Default to pip if pyproject.toml is present but not informative
		return ProjectTypePip, nil
	}

	return ProjectTypeUnknown, errors.New("project type could not be identified; expected requirements.txt, pyproject.toml, or lock files")
}

// isUVByContent identifies uv-based projects through pyproject.toml content
// without misclassifying setuptools or poetry projects:
//   - [dependency-groups]: uv's dependency group syntax
//   - [tool.uv]: uv-specific tool configuration
//   - "uv sync": uv command references in scripts
func isUVByContent(content string) bool {
	return strings.Contains(content, "[dependency-groups]") ||
		strings.Contains(content, "[tool.uv]") ||
		strings.Contains(content, "uv sync")
}

// LocateManifest finds the dependency manifest to install from, in
// priority order for the detected project type.
func LocateManifest(dir string, p ProjectType) (bool, string) {
	var filesToCheck []string

	switch p {
	case ProjectTypePip:
		filesToCheck = []string{
			"requirements.lock",
			"requirements.txt",
			"pyproject.toml",
		}
	case ProjectTypeUV:
		filesToCheck = []string{
			"uv.lock",
			"pyproject.toml",
			"requirements.txt",
		}
	case ProjectTypePoetry:
		filesToCheck = []string{
			"poetry.lock",
			"pyproject.toml",
		}
	default:
		return false, ""
	}

	for _, filename := range filesToCheck {
		if util.FileExists(dir, filename) {
			return true, filename
		}
	}

	return false, ""
}

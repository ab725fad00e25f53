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
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// interpreter candidates in lookup order; `py` is the Windows launcher
var interpreterNames = []string{"python3", "python", "py"}

// FindInterpreter resolves the Python interpreter to use. An explicit
// path or name wins; otherwise the usual names are tried against PATH.
func FindInterpreter(explicit string) (string, error) {
	if explicit != "" {
		p, err := exec.LookPath(explicit)
		if err != nil {
			return "", errors.Wrapf(err, "configured interpreter %q not found", explicit)
		}
		return p, nil
	}
	for _, name := range interpreterNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no Python interpreter found in PATH")
}

// VenvBinDir is the directory inside a virtual environment that holds
// its executables: Scripts on Windows, bin elsewhere.
func VenvBinDir(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts")
	}
	return filepath.Join(venvDir, "bin")
}

// VenvPython is the interpreter path inside a virtual environment.
func VenvPython(venvDir string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(VenvBinDir(venvDir), name)
}

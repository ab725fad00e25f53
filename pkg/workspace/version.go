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
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// `python --version` prints e.g. "Python 3.12.4"; release candidates
// print "Python 3.13.0rc1".
var pythonVersionRe = regexp.MustCompile(`Python\s+(\d+\.\d+(?:\.\d+)?)`)

// ParsePythonVersion extracts a SemVer version from interpreter
// --version output.
func ParsePythonVersion(output string) (*semver.Version, error) {
	m := pythonVersionRe.FindStringSubmatch(output)
	if m == nil {
		return nil, errors.Errorf("unrecognized interpreter version output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse interpreter version")
	}
	return v, nil
}

// InterpreterVersion runs the interpreter to report its version. Python 2
// printed the version to stderr, so both streams are inspected.
func InterpreterVersion(ctx context.Context, python string) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, python, "--version").CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s --version", python)
	}
	return ParsePythonVersion(string(out))
}

// CheckVersion verifies the interpreter against a SemVer constraint such
// as ">= 3.9". An empty constraint always passes.
func CheckVersion(ctx context.Context, python, constraint string) (*semver.Version, error) {
	v, err := InterpreterVersion(ctx, python)
	if err != nil {
		return nil, err
	}
	if constraint == "" {
		return v, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return v, errors.Wrapf(err, "invalid min_version constraint %q", constraint)
	}
	if !c.Check(v) {
		return v, errors.Errorf("interpreter version %s does not satisfy %q", v, constraint)
	}
	return v, nil
}

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
	"sort"
	"strings"

	"github.com/pylot-dev/pylot/pkg/workspace"
)

const (
	pythonPathVar = "PYTHONPATH"
	devModeVar    = "PYTHONDEVMODE"
	virtualEnvVar = "VIRTUAL_ENV"
	pathVar       = "PATH"
)

// EnvOptions describe the launch environment of a workspace.
type EnvOptions struct {
	// Root is the absolute workspace directory.
	Root   string
	SrcDir string
	// VenvDir activates the virtual environment when non-empty:
	// its bin directory is prepended to PATH and VIRTUAL_ENV is set.
	VenvDir string
	DevMode bool
	// DotEnv entries come from .env.local; Vars from pylot.toml and
	// override DotEnv on conflict. The interpreter variables composed
	// here override both.
	DotEnv map[string]string
	Vars   map[string]string
}

// ComposeEnv builds the child-process environment from a base environment
// in "KEY=value" form. The existing PYTHONPATH value is always preserved
// as a prefix of the new one.
func ComposeEnv(base []string, opts EnvOptions) []string {
	env := cloneEnv(base)

	for _, key := range sortedKeys(opts.DotEnv) {
		env = setEnv(env, key, opts.DotEnv[key])
	}
	for _, key := range sortedKeys(opts.Vars) {
		env = setEnv(env, key, opts.Vars[key])
	}

	if opts.VenvDir != "" {
		venvAbs := filepath.Join(opts.Root, opts.VenvDir)
		env = setEnv(env, virtualEnvVar, venvAbs)
		env = setEnv(env, pathVar, prependPathList(workspace.VenvBinDir(venvAbs), getEnv(env, pathVar)))
	}

	srcAbs := filepath.Join(opts.Root, opts.SrcDir)
	env = setEnv(env, pythonPathVar, appendPathList(getEnv(env, pythonPathVar), srcAbs))

	if opts.DevMode {
		env = setEnv(env, devModeVar, "1")
	}

	return env
}

func cloneEnv(base []string) []string {
	if base == nil {
		base = os.Environ()
	}
	env := make([]string, len(base))
	copy(env, base)
	return env
}

func getEnv(env []string, key string) string {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return env[i][len(prefix):]
		}
	}
	return ""
}

func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

func appendPathList(existing, entry string) string {
	if existing == "" {
		return entry
	}
	return existing + string(os.PathListSeparator) + entry
}

func prependPathList(entry, existing string) string {
	if existing == "" {
		return entry
	}
	return entry + string(os.PathListSeparator) + existing
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

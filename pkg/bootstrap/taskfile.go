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
	"io"
	"os"
	"path/filepath"

	"github.com/go-task/task/v3"
	"gopkg.in/yaml.v3"

	"github.com/pylot-dev/pylot/pkg/util"
)

// Workspaces that ship a taskfile know their own bootstrap better than
// the builtin plans; its install and dev tasks take precedence when
// present.
const (
	TaskFile = "taskfile.yaml"

	TaskInstall = "install"
	TaskDev     = "dev"
)

func HasTaskfile(root string) bool {
	return util.FileExists(root, TaskFile)
}

// HasTask reports whether the workspace taskfile defines taskName. Only
// the task names are inspected here; execution is left entirely to the
// task runner.
func HasTask(root, taskName string) bool {
	file, err := os.ReadFile(filepath.Join(root, TaskFile))
	if err != nil {
		return false
	}
	var doc struct {
		Tasks map[string]any `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(file, &doc); err != nil {
		return false
	}
	_, ok := doc.Tasks[taskName]
	return ok
}

func newTaskExecutor(dir string, verbose bool) *task.Executor {
	var o io.Writer = io.Discard
	if verbose {
		o = os.Stdout
	}
	return &task.Executor{
		Dir:     dir,
		Verbose: false,
		Silent:  !verbose,
		Color:   true,

		Stdin:  os.Stdin,
		Stdout: o,
		Stderr: os.Stderr,
	}
}

// NewTask prepares a runnable closure for one named task of the
// workspace taskfile.
func NewTask(root, taskName string, verbose bool) (func(ctx context.Context) error, error) {
	exe := newTaskExecutor(root, verbose)
	if err := exe.Setup(); err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		return exe.Run(ctx, &task.Call{Task: taskName})
	}, nil
}

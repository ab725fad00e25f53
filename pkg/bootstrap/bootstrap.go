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

// Package bootstrap turns a workspace description into the sequence of
// external-process invocations that provisions and launches it. Plans are
// plain argv lists so the sequencing logic stays testable without running
// any interpreter.
package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Step is one external command of a plan.
type Step struct {
	Title string
	Argv  []string
	// Dir is the working directory, relative to the workspace root.
	// Empty means the workspace root itself.
	Dir string
}

func (s Step) String() string {
	return strings.Join(s.Argv, " ")
}

// Plan is an ordered command sequence. Steps run to completion one at a
// time; the first failure stops the plan.
type Plan []Step

// Runner executes plan steps against a workspace root with a fixed
// environment. Output streams are inherited from the pylot process, so
// subprocesses print their own native error text.
type Runner struct {
	Root string
	Env  []string
}

func NewRunner(root string, env []string) *Runner {
	if env == nil {
		env = os.Environ()
	}
	return &Runner{Root: root, Env: env}
}

func (r *Runner) Run(ctx context.Context, plan Plan) error {
	for _, step := range plan {
		if err := r.RunStep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) RunStep(ctx context.Context, step Step) error {
	if len(step.Argv) == 0 {
		return errors.Errorf("step %q has no command", step.Title)
	}
	cmd := r.command(ctx, step)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", step.Title)
	}
	return nil
}

// RunStepQuiet runs a step with captured output, for steps whose chatter
// is only interesting on failure.
func (r *Runner) RunStepQuiet(ctx context.Context, step Step) (string, error) {
	if len(step.Argv) == 0 {
		return "", errors.Errorf("step %q has no command", step.Title)
	}
	out, err := r.command(ctx, step).CombinedOutput()
	if err != nil {
		return string(out), errors.Wrapf(err, "%s failed", step.Title)
	}
	return string(out), nil
}

func (r *Runner) command(ctx context.Context, step Step) *exec.Cmd {
	cmd := exec.CommandContext(ctx, step.Argv[0], step.Argv[1:]...)
	cmd.Dir = r.Root
	if step.Dir != "" {
		cmd.Dir = joinIfRelative(r.Root, step.Dir)
	}
	cmd.Env = r.Env
	return cmd
}

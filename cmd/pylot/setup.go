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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/pylot-dev/pylot/pkg/bootstrap"
	"github.com/pylot-dev/pylot/pkg/config"
	"github.com/pylot-dev/pylot/pkg/logger"
	"github.com/pylot-dev/pylot/pkg/util"
	"github.com/pylot-dev/pylot/pkg/workspace"
)

var (
	SetupCommands = []*cli.Command{
		{
			Name:   "setup",
			Usage:  "Provision the workspace without launching: virtual environment, dependencies, environment variables",
			Action: setupWorkspace,
		},
	}
)

func setupWorkspace(ctx context.Context, cmd *cli.Command) error {
	root, cfg, err := loadWorkspaceDetails(cmd)
	if err != nil {
		return err
	}

	env, python, err := provisionWorkspace(ctx, cmd, root, cfg, false)
	if err != nil {
		return err
	}

	fmt.Println("Workspace", util.Accented(root), "is ready")
	fmt.Println("  interpreter:", python)
	if cfg.App.Module != "" {
		fmt.Println("  module:     ", cfg.App.Module)
	}
	fmt.Println("  PYTHONPATH: ", envValue(env, "PYTHONPATH"))
	return nil
}

// provisionWorkspace performs the start-path provisioning: ensure the
// virtual environment, compose the launch environment, and install
// dependencies. In tolerant mode (the launch sequence) provisioning
// failures print warnings and the sequence continues; otherwise they are
// returned.
func provisionWorkspace(ctx context.Context, cmd *cli.Command, root string, cfg *config.WorkspaceConfig, tolerant bool) ([]string, string, error) {
	python, err := workspace.FindInterpreter(interpreterOverride(cmd, cfg))
	if err != nil {
		// nothing can run without an interpreter, tolerant or not
		return nil, "", err
	}
	logger.Debugw("resolved interpreter", "python", python)

	if step := venvStepIfNeeded(root, cfg, python); step != nil {
		var out string
		venvErr := util.Await(ctx, "Creating virtual environment...", func(ctx context.Context) error {
			var runErr error
			out, runErr = bootstrap.NewRunner(root, nil).RunStepQuiet(ctx, *step)
			return runErr
		})
		if venvErr != nil {
			if !tolerant {
				fmt.Fprint(os.Stderr, out)
				return nil, "", venvErr
			}
			fmt.Println(util.Warning("could not create virtual environment: " + venvErr.Error()))
			logger.Debugw("virtual environment creation output", "output", out)
		}
	}

	// activate the venv when its interpreter exists; fall back to the
	// system interpreter silently otherwise
	venvAbs := filepath.Join(root, cfg.Python.VenvDir)
	venvActive := false
	if p := workspace.VenvPython(venvAbs); util.EntryExists(filepath.Dir(p), filepath.Base(p)) {
		python = p
		venvActive = true
	}

	if cfg.Python.MinVersion != "" {
		if _, err := workspace.CheckVersion(ctx, python, cfg.Python.MinVersion); err != nil {
			if !tolerant {
				return nil, "", err
			}
			fmt.Println(util.Warning(err.Error()))
		}
	}

	dotEnv, err := bootstrap.LoadDotEnv(root)
	if err != nil {
		if !tolerant {
			return nil, "", err
		}
		fmt.Println(util.Warning("ignoring unreadable " + bootstrap.EnvLocalFile + ": " + err.Error()))
		dotEnv = nil
	}

	venvDir := ""
	if venvActive {
		venvDir = cfg.Python.VenvDir
	}
	env := bootstrap.ComposeEnv(nil, bootstrap.EnvOptions{
		Root:    root,
		SrcDir:  cfg.App.SrcDir,
		VenvDir: venvDir,
		DevMode: cfg.Env.DevMode,
		DotEnv:  dotEnv,
		Vars:    cfg.Env.Vars,
	})

	if err := installDependencies(ctx, cmd, root, cfg, python, env); err != nil {
		if !tolerant {
			return nil, "", err
		}
		fmt.Println(util.Warning("dependency install failed: " + err.Error()))
	}

	return env, python, nil
}

// venvStepIfNeeded returns the virtual-environment creation step, or nil
// when the directory already exists.
func venvStepIfNeeded(root string, cfg *config.WorkspaceConfig, python string) *bootstrap.Step {
	if _, err := os.Stat(filepath.Join(root, cfg.Python.VenvDir)); !os.IsNotExist(err) {
		return nil
	}
	step := bootstrap.VenvStep(python, cfg.Python.VenvDir)
	return &step
}

// installPlanFor decides how dependencies get installed, without running
// anything: the workspace taskfile's install task wins, then the plan for
// the detected tooling. skip reports a pip workspace without its manifest,
// which installs nothing.
func installPlanFor(root string, cfg *config.WorkspaceConfig, python string) (plan bootstrap.Plan, useTask, skip bool, err error) {
	if bootstrap.HasTaskfile(root) && bootstrap.HasTask(root, bootstrap.TaskInstall) {
		return nil, true, false, nil
	}

	ptype, derr := workspace.DetectProjectType(root)
	if derr != nil {
		ptype = workspace.ProjectTypePip
	}
	logger.Debugw("detected project type", "type", ptype)

	if ptype == workspace.ProjectTypePip && !util.FileExists(root, cfg.Python.Manifest) {
		return nil, false, true, nil
	}
	if tool := ptype.Tool(); tool != "pip" && !bootstrap.CommandExists(tool) {
		return nil, false, false, fmt.Errorf("%s project detected but %s is not installed", tool, tool)
	}
	return bootstrap.InstallPlan(ptype, python, cfg.Python.Manifest), false, false, nil
}

// installDependencies installs from the workspace manifest. A workspace
// taskfile with an install task takes precedence over the builtin plans.
// A missing manifest is never an error: it prints a warning and the
// caller proceeds.
func installDependencies(ctx context.Context, cmd *cli.Command, root string, cfg *config.WorkspaceConfig, python string, env []string) error {
	plan, useTask, skip, err := installPlanFor(root, cfg, python)
	if err != nil {
		return err
	}
	if skip {
		fmt.Println(util.Warning("no " + cfg.Python.Manifest + " found, skipping dependency install"))
		return nil
	}
	if useTask {
		run, err := bootstrap.NewTask(root, bootstrap.TaskInstall, cmd.Bool("verbose"))
		if err != nil {
			return err
		}
		return util.Await(ctx, "Installing dependencies...", run)
	}

	runner := bootstrap.NewRunner(root, env)
	return util.Await(ctx, "Installing dependencies...", func(ctx context.Context) error {
		for _, step := range plan {
			if out, err := runner.RunStepQuiet(ctx, step); err != nil {
				fmt.Fprint(os.Stderr, out)
				return err
			}
		}
		return nil
	})
}

func envValue(env []string, key string) string {
	prefix := key + "="
	for _, kv := range env {
		if len(kv) > len(prefix) && kv[:len(prefix)] == prefix {
			return kv[len(prefix):]
		}
	}
	return ""
}

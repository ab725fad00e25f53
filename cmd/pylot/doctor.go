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
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pylot-dev/pylot/pkg/bootstrap"
	"github.com/pylot-dev/pylot/pkg/config"
	"github.com/pylot-dev/pylot/pkg/gitsync"
	"github.com/pylot-dev/pylot/pkg/util"
	"github.com/pylot-dev/pylot/pkg/workspace"
)

var (
	DoctorCommands = []*cli.Command{
		{
			Name:   "doctor",
			Usage:  "Check that the workspace and toolchain are ready to launch",
			Action: runDoctor,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "json",
					Aliases: []string{"j"},
					Usage:   "Output as JSON",
				},
			},
		},
	}
)

type checkResult struct {
	Name     string `json:"name"`
	OK       bool   `json:"ok"`
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
}

type check struct {
	name     string
	required bool
	run      func(ctx context.Context) (string, error)
}

func runDoctor(ctx context.Context, cmd *cli.Command) error {
	root, cfg, err := loadWorkspaceDetails(cmd)
	if err != nil {
		return err
	}

	checks := []check{
		{
			name:     "interpreter",
			required: true,
			run: func(ctx context.Context) (string, error) {
				python, err := workspace.FindInterpreter(interpreterOverride(cmd, cfg))
				if err != nil {
					return "", err
				}
				v, err := workspace.CheckVersion(ctx, python, cfg.Python.MinVersion)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (%s)", python, v), nil
			},
		},
		{
			name: "git",
			run: func(ctx context.Context) (string, error) {
				if !bootstrap.CommandExists("git") {
					return "", errors.New("git not found in PATH")
				}
				if !gitsync.IsRepo(root) {
					return "installed; workspace is not a checkout, updates unavailable", nil
				}
				return "installed", nil
			},
		},
		{
			name:     "project",
			required: true,
			run: func(ctx context.Context) (string, error) {
				ptype, err := workspace.DetectProjectType(root)
				if err != nil {
					return "", err
				}
				if found, manifest := workspace.LocateManifest(root, ptype); found {
					return fmt.Sprintf("%s (%s)", ptype, manifest), nil
				}
				return string(ptype), nil
			},
		},
		{
			name: "virtualenv",
			run: func(ctx context.Context) (string, error) {
				if !util.DirExists(root, cfg.Python.VenvDir) {
					return "", errors.New(cfg.Python.VenvDir + " missing; will be created on launch")
				}
				venvAbs := filepath.Join(root, cfg.Python.VenvDir)
				p := workspace.VenvPython(venvAbs)
				if !util.EntryExists(filepath.Dir(p), filepath.Base(p)) {
					return "", errors.New("present but has no interpreter")
				}
				return cfg.Python.VenvDir, nil
			},
		},
		{
			name:     "module",
			required: true,
			run: func(ctx context.Context) (string, error) {
				if cfg.App.Module == "" {
					return "", errors.New("not configured and not inferable; set app.module in " + config.PylotTOMLFile)
				}
				if !util.DirExists(root, cfg.AppDir()) {
					return "", fmt.Errorf("%s has no directory under %s", cfg.App.Module, cfg.App.SrcDir)
				}
				return cfg.App.Module, nil
			},
		},
	}

	results := make([]checkResult, len(checks))
	group, gctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		group.Go(func() error {
			detail, err := c.run(gctx)
			r := checkResult{Name: c.name, OK: err == nil, Required: c.required, Detail: detail}
			if err != nil {
				r.Detail = err.Error()
			}
			results[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		util.PrintJSON(results)
	} else {
		for _, r := range results {
			mark := util.Accented("✓")
			if !r.OK {
				mark = util.Warning("✗")
			}
			fmt.Printf("%s %-11s %s\n", mark, r.Name, util.Dimmed(r.Detail))
		}
	}

	for _, r := range results {
		if r.Required && !r.OK {
			return cli.Exit("", 1)
		}
	}
	return nil
}

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
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/pylot-dev/pylot/pkg/bootstrap"
	"github.com/pylot-dev/pylot/pkg/util"
	"github.com/pylot-dev/pylot/pkg/workspace"
)

var (
	EnvCommands = []*cli.Command{
		{
			Name:   "env",
			Usage:  "Print the environment the application would be launched with",
			Action: printEnvironment,
			Commands: []*cli.Command{
				{
					Name:   "init",
					Usage:  "Instantiate .env.local files from .env.example templates",
					Action: initEnvironment,
				},
			},
		},
	}
)

func printEnvironment(ctx context.Context, cmd *cli.Command) error {
	root, cfg, err := loadWorkspaceDetails(cmd)
	if err != nil {
		return err
	}

	dotEnv, err := bootstrap.LoadDotEnv(root)
	if err != nil {
		return err
	}

	venvDir := ""
	venvAbs := filepath.Join(root, cfg.Python.VenvDir)
	if p := workspace.VenvPython(venvAbs); util.EntryExists(filepath.Dir(p), filepath.Base(p)) {
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

	sort.Strings(env)
	for _, kv := range env {
		fmt.Println(kv)
	}
	return nil
}

func initEnvironment(ctx context.Context, cmd *cli.Command) error {
	root, cfg, err := loadWorkspaceDetails(cmd)
	if err != nil {
		return err
	}

	if !interactive(cmd) {
		return errors.New("env init prompts for values and needs a terminal; rerun without --silent")
	}

	return bootstrap.InstantiateDotEnv(root, cfg.Env.Vars, func(key, value string) (string, error) {
		err := huh.NewInput().
			Title(key).
			Description("Value for " + key).
			Value(&value).
			WithTheme(theme).
			Run()
		return value, err
	})
}

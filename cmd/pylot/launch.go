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
	"os/exec"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/pylot-dev/pylot/pkg/bootstrap"
	"github.com/pylot-dev/pylot/pkg/config"
	"github.com/pylot-dev/pylot/pkg/gitsync"
	"github.com/pylot-dev/pylot/pkg/logger"
	"github.com/pylot-dev/pylot/pkg/util"
)

var (
	forceUpdate bool
	skipUpdate  bool

	LaunchCommands = []*cli.Command{
		{
			Name:    "launch",
			Aliases: []string{"run"},
			Usage:   "Run the full launch sequence: update, provision, and start the application",
			Action:  launchWorkspace,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "update",
					Usage:       "Pull updates without asking",
					Destination: &forceUpdate,
				},
				&cli.BoolFlag{
					Name:        "no-update",
					Usage:       "Skip the update check",
					Destination: &skipUpdate,
				},
			},
		},
	}
)

func launchWorkspace(ctx context.Context, cmd *cli.Command) error {
	root, cfg, err := loadWorkspaceDetails(cmd)
	if err != nil {
		return err
	}

	printBanner(cfg.App.Module)

	if wantsUpdate(cmd) {
		// update failures never abort a launch
		out, uerr := gitsync.Update(ctx, root, gitsync.UpdateOptions{Quiet: true})
		if uerr != nil {
			fmt.Println(util.Warning("update skipped: " + uerr.Error()))
			logger.Debugw("update output", "output", out)
		} else {
			fmt.Println("Workspace updated")
			// the merge may have changed pylot.toml
			if root, cfg, err = loadWorkspaceDetails(cmd); err != nil {
				return err
			}
		}
	}

	env, python, err := provisionWorkspace(ctx, cmd, root, cfg, true)
	if err != nil {
		return err
	}

	if cfg.App.Module == "" {
		return errors.New("no launchable module found: set app.module in " + tomlFilename)
	}

	recordRecentWorkspace(root)

	if bootstrap.HasTaskfile(root) && bootstrap.HasTask(root, bootstrap.TaskDev) {
		run, err := bootstrap.NewTask(root, bootstrap.TaskDev, cmd.Bool("verbose"))
		if err != nil {
			return err
		}
		fmt.Println("Starting", util.Accented(bootstrap.TaskDev), "task")
		return run(ctx)
	}

	step := bootstrap.LaunchStep(python, cfg.App.Module, cfg.AppDir())
	fmt.Println("Starting", util.Accented(cfg.App.Module))
	logger.Debugw("launching", "argv", step.Argv, "dir", step.Dir)

	if err := bootstrap.NewRunner(root, env).RunStep(ctx, step); err != nil {
		// the application's exit code is pylot's exit code
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return cli.Exit("", exitErr.ExitCode())
		}
		return err
	}
	return nil
}

// wantsUpdate decides whether the update path runs: flags win, and only
// an explicit yes from the prompt triggers it. Everything else, including
// a non-interactive session, proceeds straight to the start path.
func wantsUpdate(cmd *cli.Command) bool {
	if skipUpdate {
		return false
	}
	if forceUpdate {
		return true
	}
	if !interactive(cmd) {
		return false
	}
	doUpdate := false
	if err := huh.NewConfirm().
		Title("Check for updates before launching?").
		Value(&doUpdate).
		Inline(true).
		WithTheme(theme).
		Run(); err != nil {
		return false
	}
	return doUpdate
}

func recordRecentWorkspace(root string) {
	cliConf, err := config.LoadOrCreate()
	if err != nil {
		logger.Debugw("could not load CLI config", "error", err)
		return
	}
	cliConf.AddRecentWorkspace(root)
	if err := cliConf.PersistIfNeeded(); err != nil {
		logger.Debugw("could not persist CLI config", "error", err)
	}
}

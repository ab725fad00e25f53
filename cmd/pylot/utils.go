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
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/pylot-dev/pylot/pkg/config"
)

var (
	workspaceDir = "."
	tomlFilename = config.PylotTOMLFile

	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "`DIR` of the workspace to operate on",
			Sources:     cli.EnvVars("PYLOT_WORKSPACE"),
			Value:       ".",
			Destination: &workspaceDir,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Config `TOML` to use in the workspace directory",
			Value:       config.PylotTOMLFile,
			Destination: &tomlFilename,
			Required:    false,
		},
		&cli.StringFlag{
			Name:    "python",
			Usage:   "`INTERPRETER` to use instead of autodetection",
			Sources: cli.EnvVars("PYLOT_PYTHON"),
		},
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "If set, will not prompt for confirmation",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
		},
	}
)

// loadWorkspaceDetails resolves the workspace root to an absolute path
// and loads its configuration, applying defaults when pylot.toml is
// absent.
func loadWorkspaceDetails(cmd *cli.Command) (string, *config.WorkspaceConfig, error) {
	root, err := filepath.Abs(workspaceDir)
	if err != nil {
		return "", nil, err
	}
	cfg, _, err := config.LoadWorkspace(root, tomlFilename)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// interpreterOverride resolves the interpreter preference order: the
// --python flag (or PYLOT_PYTHON), then pylot.toml, then the per-user
// CLI config default.
func interpreterOverride(cmd *cli.Command, cfg *config.WorkspaceConfig) string {
	if p := cmd.String("python"); p != "" {
		return p
	}
	if cfg.Python.Interpreter != "" {
		return cfg.Python.Interpreter
	}
	if cliConf, err := config.LoadOrCreate(); err == nil {
		return cliConf.DefaultInterpreter
	}
	return ""
}

// interactive reports whether prompts may be shown.
func interactive(cmd *cli.Command) bool {
	if cmd.Bool("silent") {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

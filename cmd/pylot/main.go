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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	pylot "github.com/pylot-dev/pylot"
	"github.com/pylot-dev/pylot/pkg/logger"
)

func main() {
	app := &cli.Command{
		Name:                   "pylot",
		Usage:                  "Bootstrap and launch Python application workspaces",
		Description:            "A development launcher that keeps a Python workspace runnable: pull updates, provision a virtual environment, install dependencies, compose the environment, and start the application.",
		Version:                pylot.Version,
		EnableShellCompletion:  true,
		Suggest:                true,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  globalFlags,
		Before:                 initLogger,
	}

	app.Commands = append(app.Commands, LaunchCommands...)
	app.Commands = append(app.Commands, SetupCommands...)
	app.Commands = append(app.Commands, UpdateCommands...)
	app.Commands = append(app.Commands, EnvCommands...)
	app.Commands = append(app.Commands, DoctorCommands...)

	// Register cleanup hook for SIGINT, SIGTERM, SIGQUIT
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logger.Init(cmd.Bool("verbose"))
	return nil, nil
}

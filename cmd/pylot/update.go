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
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/pylot-dev/pylot/pkg/gitsync"
)

var (
	ffOnly bool

	UpdateCommands = []*cli.Command{
		{
			Name:   "update",
			Usage:  "Pull workspace updates (git fetch, then merge)",
			Action: updateWorkspace,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "ff-only",
					Usage:       "Refuse merges that are not fast-forwards",
					Destination: &ffOnly,
				},
			},
		},
	}
)

func updateWorkspace(ctx context.Context, cmd *cli.Command) error {
	root, err := filepath.Abs(workspaceDir)
	if err != nil {
		return err
	}

	// unlike the launch sequence, a standalone update surfaces failures
	if _, err := gitsync.Update(ctx, root, gitsync.UpdateOptions{FFOnly: ffOnly}); err != nil {
		return err
	}
	fmt.Println("Workspace updated")
	return nil
}

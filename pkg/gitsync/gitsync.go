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

// Package gitsync pulls workspace updates through the git binary. The
// repository itself stays an opaque collaborator: pylot never inspects
// objects or resolves conflicts, it only sequences fetch and merge.
package gitsync

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pylot-dev/pylot/pkg/bootstrap"
	"github.com/pylot-dev/pylot/pkg/util"
)

var ErrNotARepository = errors.New("workspace is not a git checkout")

// IsRepo reports whether root is a git checkout. Worktrees and
// submodules carry .git as a file, so any entry kind counts.
func IsRepo(root string) bool {
	return util.EntryExists(root, ".git")
}

type UpdateOptions struct {
	// FFOnly refuses merges that would create a merge commit.
	FFOnly bool
	// Quiet captures subprocess output instead of inheriting stdio;
	// the captured text is returned alongside any error.
	Quiet bool
}

// Update runs the fetch-then-merge sequence in root and returns the
// combined output of both commands when quiet.
func Update(ctx context.Context, root string, opts UpdateOptions) (string, error) {
	if !IsRepo(root) {
		return "", ErrNotARepository
	}
	if !bootstrap.CommandExists("git") {
		return "", errors.New("git not found in PATH")
	}

	runner := bootstrap.NewRunner(root, nil)
	plan := bootstrap.Plan{
		bootstrap.FetchStep(),
		bootstrap.MergeStep(opts.FFOnly),
	}

	if !opts.Quiet {
		return "", runner.Run(ctx, plan)
	}

	var combined string
	for _, step := range plan {
		out, err := runner.RunStepQuiet(ctx, step)
		combined += out
		if err != nil {
			return combined, err
		}
	}
	return combined, nil
}

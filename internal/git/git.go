// Copyright 2026 The wsops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git shells out to git for the repository operations wsops performs.
package git

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/apiforge/wsops/internal/command"
)

const headsPrefix = "refs/heads/"

// ErrStatusUnclean is reported when git status reports uncommitted changes.
var ErrStatusUnclean = errors.New("git working directory is not clean")

// CheckVersion checks that the git version command can run.
func CheckVersion(ctx context.Context, gitExe string) error {
	return command.Run(ctx, gitExe, "--version")
}

// Clone clones the repository at url into dir. Credential prompts are
// disabled so a misconfigured remote fails instead of hanging the sync.
func Clone(ctx context.Context, gitExe, url, dir string) error {
	env := map[string]string{"GIT_TERMINAL_PROMPT": "0"}
	return command.RunWithEnv(ctx, env, gitExe, "clone", url, dir)
}

// Pull fast-forwards the current branch of the checkout in dir. It refuses
// to merge or rebase; a diverged branch is an error for the operator.
func Pull(ctx context.Context, gitExe, dir string) error {
	return command.RunIn(ctx, dir, gitExe, "pull", "--ff-only")
}

// Fetch updates (and prunes) the remote-tracking refs for the given remote.
func Fetch(ctx context.Context, gitExe, dir, remote string) error {
	return command.RunIn(ctx, dir, gitExe, "fetch", "--prune", remote)
}

// Checkout checks out the given branch in dir.
func Checkout(ctx context.Context, gitExe, dir, branch string) error {
	return command.RunIn(ctx, dir, gitExe, "checkout", branch)
}

// ResetHard resets the checkout in dir to the given ref, discarding local
// changes.
func ResetHard(ctx context.Context, gitExe, dir, ref string) error {
	return command.RunIn(ctx, dir, gitExe, "reset", "--hard", ref)
}

// AssertStatusClean returns [ErrStatusUnclean] if the checkout in dir has
// uncommitted changes.
func AssertStatusClean(ctx context.Context, gitExe, dir string) error {
	output, err := command.Output(ctx, dir, gitExe, "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("failed to check git status: %w", err)
	}
	if len(output) > 0 {
		return ErrStatusUnclean
	}
	return nil
}

// RemoteBranches returns the branch names present on the given remote,
// stripped of the refs/heads/ prefix.
func RemoteBranches(ctx context.Context, gitExe, dir, remote string) ([]string, error) {
	output, err := command.Output(ctx, dir, gitExe, "ls-remote", "--heads", remote)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches on remote %s: %w", remote, err)
	}
	var branches []string
	for _, line := range strings.Split(output, "\n") {
		// Each line is "<sha>\trefs/heads/<name>".
		_, ref, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		if name, ok := strings.CutPrefix(ref, headsPrefix); ok {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// ChangedFiles returns the locally modified files of the checkout in dir,
// with files matching the given gitignore-style patterns removed.
func ChangedFiles(ctx context.Context, gitExe, dir string, ignoredChanges []string) ([]string, error) {
	output, err := command.Output(ctx, dir, gitExe, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to check git status: %w", err)
	}
	var files []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		name := line[3:]
		// Renames report as "old -> new"; the new path is the change.
		if _, renamed, found := strings.Cut(name, " -> "); found {
			name = renamed
		}
		files = append(files, name)
	}
	return filesFilter(ignoredChanges, files), nil
}

func filesFilter(ignoredChanges []string, files []string) []string {
	var patterns []gitignore.Pattern
	for _, p := range ignoredChanges {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	matcher := gitignore.NewMatcher(patterns)

	files = slices.DeleteFunc(files, func(a string) bool {
		if a == "" {
			return true
		}
		return matcher.Match(strings.Split(a, "/"), false)
	})
	return files
}

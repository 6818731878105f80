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

// Package template keeps a template repository checkout on its latest
// release-line branch.
//
// Release-line branches are named "<prefix>-<version>", for example
// "pack-2.1.0" or "pack-2.2.0-beta.1". The newest branch under the version
// ordering of [semver.Compare] is the one a template checkout should track.
package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apiforge/wsops/internal/command"
	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/git"
	"github.com/apiforge/wsops/internal/semver"
)

var (
	// ErrNoBranches is returned when no remote branch matches the
	// configured prefix.
	ErrNoBranches = errors.New("no release branches found")

	// ErrNotConfigured is returned when the workspace configuration has no
	// template section.
	ErrNotConfigured = errors.New("no template repository configured")
)

// LatestBranch returns the branch carrying the highest version among the
// branches named "<prefix>-<version>". A tie between equal versions resolves
// to whichever candidate is scanned first. ok is false when no branch
// matches the prefix.
func LatestBranch(branches []string, prefix string) (branch string, ok bool) {
	var best string
	sep := prefix + "-"
	for _, b := range branches {
		version, matched := strings.CutPrefix(b, sep)
		if !matched {
			continue
		}
		if !ok || semver.Compare(version, best) > 0 {
			branch, best, ok = b, version, true
		}
	}
	return branch, ok
}

// MatchingBranches returns the branches named "<prefix>-<version>", ordered
// oldest to newest.
func MatchingBranches(branches []string, prefix string) []string {
	sep := prefix + "-"
	var matches []string
	for _, b := range branches {
		if strings.HasPrefix(b, sep) {
			matches = append(matches, b)
		}
	}
	slices.SortStableFunc(matches, func(a, b string) int {
		return semver.Compare(strings.TrimPrefix(a, sep), strings.TrimPrefix(b, sep))
	})
	return matches
}

// List fetches the template remote and returns the release-line branches for
// the configured prefix, ordered oldest to newest.
func List(ctx context.Context, cfg *config.Config, root string) ([]string, error) {
	tmpl, dir, gitExe, err := setup(cfg, root)
	if err != nil {
		return nil, err
	}
	if err := git.Fetch(ctx, gitExe, dir, tmpl.Remote); err != nil {
		return nil, err
	}
	branches, err := git.RemoteBranches(ctx, gitExe, dir, tmpl.Remote)
	if err != nil {
		return nil, err
	}
	return MatchingBranches(branches, tmpl.Prefix), nil
}

// Checkout fetches the template remote, selects the latest release-line
// branch, checks it out, and hard resets the checkout to the remote ref. It
// returns the selected branch name. The working tree must be clean.
func Checkout(ctx context.Context, cfg *config.Config, root string) (string, error) {
	tmpl, dir, gitExe, err := setup(cfg, root)
	if err != nil {
		return "", err
	}
	if err := git.AssertStatusClean(ctx, gitExe, dir); err != nil {
		return "", fmt.Errorf("template repository %s: %w", tmpl.Repository, err)
	}
	if err := git.Fetch(ctx, gitExe, dir, tmpl.Remote); err != nil {
		return "", err
	}
	branches, err := git.RemoteBranches(ctx, gitExe, dir, tmpl.Remote)
	if err != nil {
		return "", err
	}
	branch, ok := LatestBranch(branches, tmpl.Prefix)
	if !ok {
		return "", fmt.Errorf("%w for prefix %q", ErrNoBranches, tmpl.Prefix)
	}
	slog.Info("checking out template branch", "repository", tmpl.Repository, "branch", branch)
	if err := git.Checkout(ctx, gitExe, dir, branch); err != nil {
		return "", err
	}
	if err := git.ResetHard(ctx, gitExe, dir, tmpl.Remote+"/"+branch); err != nil {
		return "", err
	}
	return branch, nil
}

func setup(cfg *config.Config, root string) (*config.Template, string, string, error) {
	if cfg.Template == nil {
		return nil, "", "", ErrNotConfigured
	}
	dir := filepath.Join(root, cfg.Template.Repository)
	gitExe := command.GetExecutablePath(cfg.Preinstalled, "git")
	return cfg.Template, dir, gitExe, nil
}

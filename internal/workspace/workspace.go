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

// Package workspace syncs sibling repositories and generates the editor
// workspace file.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"github.com/apiforge/wsops/internal/command"
	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/git"
)

// ErrUnknownRepository is returned when a requested repository name is not
// configured.
var ErrUnknownRepository = errors.New("unknown repository")

// fileTemplate renders the editor workspace file. Folder entries are emitted
// in configuration order: repository checkouts first, then extra folders.
const fileTemplate = `{
  "folders": [
{{#folders}}    { "path": "{{{path}}}" }{{^last}},{{/last}}
{{/folders}}  ]
}
`

// File renders the workspace file contents for cfg.
func File(cfg *config.Config) (string, error) {
	var paths []string
	for _, r := range cfg.Repositories {
		paths = append(paths, r.Name)
	}
	if cfg.Workspace != nil {
		paths = append(paths, cfg.Workspace.Folders...)
	}

	folders := make([]map[string]any, len(paths))
	for i, p := range paths {
		folders[i] = map[string]any{
			"path": p,
			"last": i == len(paths)-1,
		}
	}
	return mustache.Render(fileTemplate, map[string]any{"folders": folders})
}

// Write renders the workspace file and writes it to the workspace root.
func Write(cfg *config.Config, root string) error {
	contents, err := File(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(root, cfg.Workspace.File)
	return os.WriteFile(path, []byte(contents), 0644)
}

// Sync clones missing repositories, fast-forwards clean existing ones, and
// regenerates the workspace file. When names is non-empty only those
// repositories are synced; the workspace file is regenerated either way. A
// repository with local changes is skipped with a warning rather than
// pulled.
func Sync(ctx context.Context, cfg *config.Config, root string, names []string) error {
	gitExe := command.GetExecutablePath(cfg.Preinstalled, "git")
	if err := git.CheckVersion(ctx, gitExe); err != nil {
		return fmt.Errorf("git is not runnable: %w", err)
	}

	repos, err := selectRepositories(cfg, names)
	if err != nil {
		return err
	}
	for _, r := range repos {
		if err := syncRepository(ctx, cfg, gitExe, root, r); err != nil {
			return err
		}
	}
	return Write(cfg, root)
}

func syncRepository(ctx context.Context, cfg *config.Config, gitExe, root string, r *config.Repository) error {
	dir := filepath.Join(root, r.Name)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		slog.Info("cloning", "repository", r.Name, "url", cfg.CloneURL(r))
		if err := git.Clone(ctx, gitExe, cfg.CloneURL(r), dir); err != nil {
			return err
		}
		if r.Branch != "" {
			return git.Checkout(ctx, gitExe, dir, r.Branch)
		}
		return nil
	} else if err != nil {
		return err
	}

	if err := git.AssertStatusClean(ctx, gitExe, dir); err != nil {
		if errors.Is(err, git.ErrStatusUnclean) {
			slog.Warn("skipping pull, working tree has local changes", "repository", r.Name)
			return nil
		}
		return err
	}
	slog.Info("updating", "repository", r.Name)
	return git.Pull(ctx, gitExe, dir)
}

// RepositoryStatus reports the local state of one configured repository.
type RepositoryStatus struct {
	// Name is the repository's checkout directory name.
	Name string

	// Missing is true when the repository has no checkout yet.
	Missing bool

	// Changed lists locally modified files, after applying the configured
	// ignore patterns.
	Changed []string
}

// Status reports the local state of every configured repository.
func Status(ctx context.Context, cfg *config.Config, root string) ([]RepositoryStatus, error) {
	gitExe := command.GetExecutablePath(cfg.Preinstalled, "git")
	var statuses []RepositoryStatus
	for _, r := range cfg.Repositories {
		dir := filepath.Join(root, r.Name)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			statuses = append(statuses, RepositoryStatus{Name: r.Name, Missing: true})
			continue
		} else if err != nil {
			return nil, err
		}
		changed, err := git.ChangedFiles(ctx, gitExe, dir, cfg.IgnoredChanges)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, RepositoryStatus{Name: r.Name, Changed: changed})
	}
	return statuses, nil
}

func selectRepositories(cfg *config.Config, names []string) ([]*config.Repository, error) {
	if len(names) == 0 {
		return cfg.Repositories, nil
	}
	var repos []*config.Repository
	for _, name := range names {
		r, ok := cfg.RepositoryByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, name)
		}
		repos = append(repos, r)
	}
	return repos, nil
}

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

// Package linker switches package manifests between published registry
// versions and local file references.
//
// A repository that declares a package name publishes a linkable package;
// every other configured repository is a potential consumer. Linking
// rewrites each consumer's manifest to depend on the local checkout
// ("file:../<repo>"); unlinking restores a caret range on the latest
// published version. Installing the rewritten dependencies is left to the
// operator's package manager.
package linker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/manifest"
	"github.com/apiforge/wsops/internal/registry"
)

var (
	// ErrUnknownPackage is returned when a requested package matches no
	// configured repository.
	ErrUnknownPackage = errors.New("unknown package")

	// ErrNoLinkablePackages is returned when no configured repository
	// publishes a package.
	ErrNoLinkablePackages = errors.New("no linkable packages configured")
)

// Linker rewrites consumer manifests across the workspace.
type Linker struct {
	// Config is the workspace configuration.
	Config *config.Config

	// Root is the workspace root directory.
	Root string

	// Registry resolves published versions for Unlink.
	Registry *registry.Client
}

// Link rewrites dependencies on the given packages (all linkable packages
// when none are named) to local file references.
func (l *Linker) Link(ctx context.Context, packages []string) error {
	targets, err := l.targets(packages)
	if err != nil {
		return err
	}
	return l.rewrite(targets, func(target *config.Repository, current string) (string, error) {
		return "file:../" + target.Name, nil
	})
}

// Unlink restores registry version ranges for the given packages (all
// linkable packages when none are named), resolving the latest published
// version of each. Only file references are rewritten; a manifest already on
// a registry range is left alone. When verify is true, each resolved
// version's tarball is downloaded and checked against its registry-declared
// checksum before any manifest is rewritten.
func (l *Linker) Unlink(ctx context.Context, packages []string, verify bool) error {
	targets, err := l.targets(packages)
	if err != nil {
		return err
	}

	// Resolve every target version up front so a registry failure aborts
	// the run before any manifest has been rewritten.
	latest := make(map[string]string, len(targets))
	for _, target := range targets {
		version, err := l.Registry.Latest(ctx, target.Package)
		if err != nil {
			return fmt.Errorf("failed to resolve latest version of %s: %w", target.Package, err)
		}
		if verify {
			if err := l.Registry.Verify(ctx, target.Package, version); err != nil {
				return err
			}
		}
		latest[target.Package] = version
	}

	return l.rewrite(targets, func(target *config.Repository, current string) (string, error) {
		if !strings.HasPrefix(current, "file:") {
			return current, nil
		}
		return "^" + latest[target.Package], nil
	})
}

// rewrite loads every consumer manifest in the workspace and applies spec to
// each target dependency it declares. spec receives the current version
// range and returns the replacement.
func (l *Linker) rewrite(targets []*config.Repository, spec func(target *config.Repository, current string) (string, error)) error {
	for _, repo := range l.Config.Repositories {
		path := filepath.Join(l.Root, repo.Name, manifest.Filename)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			slog.Debug("no manifest, skipping", "repository", repo.Name)
			continue
		} else if err != nil {
			return err
		}
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		for _, target := range targets {
			if repo.Name == target.Name {
				continue
			}
			current, ok := m.Dependency(target.Package)
			if !ok {
				continue
			}
			next, err := spec(target, current)
			if err != nil {
				return err
			}
			if m.SetDependency(target.Package, next) {
				slog.Info("rewrote dependency",
					"manifest", path, "package", target.Package, "range", next)
			}
		}
		if err := m.Save(); err != nil {
			return err
		}
	}
	return nil
}

// targets resolves the requested package names (or every linkable repository
// when none are given) to their repositories. A request may name either the
// published package or the repository directory.
func (l *Linker) targets(packages []string) ([]*config.Repository, error) {
	var linkable []*config.Repository
	for _, r := range l.Config.Repositories {
		if r.Package != "" {
			linkable = append(linkable, r)
		}
	}
	if len(linkable) == 0 {
		return nil, ErrNoLinkablePackages
	}
	if len(packages) == 0 {
		return linkable, nil
	}

	var targets []*config.Repository
	for _, name := range packages {
		found := false
		for _, r := range linkable {
			if r.Package == name || r.Name == name {
				targets = append(targets, r)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
		}
	}
	return targets, nil
}

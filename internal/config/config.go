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

// Package config defines the wsops.yaml workspace configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultRegistry is the package registry queried when restoring
	// published dependency versions.
	DefaultRegistry = "https://registry.npmjs.org"

	// DefaultWorkspaceFile is the editor workspace file written to the
	// workspace root.
	DefaultWorkspaceFile = "wsops.code-workspace"

	// DefaultTemplateRemote is the git remote used for template repository
	// operations.
	DefaultTemplateRemote = "origin"
)

var (
	// ErrNoRepositories is returned when the configuration lists no
	// repositories.
	ErrNoRepositories = errors.New("no repositories configured")

	// ErrMissingRepositoryName is returned when a repository entry has no name.
	ErrMissingRepositoryName = errors.New("repository entry is missing a name")

	// ErrMissingCloneURL is returned when neither a repository URL nor a
	// workspace remote is configured.
	ErrMissingCloneURL = errors.New("repository has no url and no remote is configured")

	// ErrUnknownTemplateRepository is returned when the template section
	// names a repository that is not configured.
	ErrUnknownTemplateRepository = errors.New("template repository is not in the repositories list")

	// ErrMissingTemplatePrefix is returned when the template section has no
	// branch prefix.
	ErrMissingTemplatePrefix = errors.New("template section is missing a branch prefix")
)

// Config is the top-level wsops.yaml document.
type Config struct {
	// Remote is the base URL sibling repositories are cloned from, for
	// example "https://github.com/apiforge". A repository's clone URL is
	// Remote + "/" + name + ".git" unless the repository sets its own url.
	Remote string `yaml:"remote,omitempty"`

	// Registry is the package registry base URL. Defaults to
	// [DefaultRegistry].
	Registry string `yaml:"registry,omitempty"`

	// Workspace configures the generated editor workspace file.
	Workspace *Workspace `yaml:"workspace,omitempty"`

	// Repositories lists the sibling repositories managed in this workspace.
	Repositories []*Repository `yaml:"repositories,omitempty"`

	// Template configures the versioned template repository, if any.
	Template *Template `yaml:"template,omitempty"`

	// IgnoredChanges are gitignore-style patterns excluded from status
	// reports.
	IgnoredChanges []string `yaml:"ignored_changes,omitempty"`

	// Preinstalled maps command names (e.g. "git") to absolute paths,
	// overriding PATH lookup.
	Preinstalled map[string]string `yaml:"preinstalled,omitempty"`
}

// Repository describes one sibling repository checkout.
type Repository struct {
	// Name is the checkout directory under the workspace root.
	Name string `yaml:"name"`

	// URL overrides the clone URL derived from the workspace remote.
	URL string `yaml:"url,omitempty"`

	// Package is the published package name (e.g. "@apiforge/docs-theme")
	// when this repository publishes a linkable package.
	Package string `yaml:"package,omitempty"`

	// Branch, when set, is checked out after cloning.
	Branch string `yaml:"branch,omitempty"`
}

// Workspace configures the generated editor workspace file.
type Workspace struct {
	// File is the workspace file name, relative to the workspace root.
	File string `yaml:"file,omitempty"`

	// Folders are extra folder entries appended after the repository
	// checkouts.
	Folders []string `yaml:"folders,omitempty"`
}

// Template configures the versioned template repository.
type Template struct {
	// Repository is the name of the template repository; it must appear in
	// the repositories list.
	Repository string `yaml:"repository"`

	// Prefix is the branch naming prefix; release-line branches are named
	// "<prefix>-<version>".
	Prefix string `yaml:"prefix"`

	// Remote is the git remote to fetch and select branches from. Defaults
	// to [DefaultTemplateRemote].
	Remote string `yaml:"remote,omitempty"`
}

// SetDefaults fills unset fields with their default values.
func (c *Config) SetDefaults() {
	if c.Registry == "" {
		c.Registry = DefaultRegistry
	}
	if c.Workspace == nil {
		c.Workspace = &Workspace{}
	}
	if c.Workspace.File == "" {
		c.Workspace.File = DefaultWorkspaceFile
	}
	if c.Template != nil && c.Template.Remote == "" {
		c.Template.Remote = DefaultTemplateRemote
	}
}

// IsValid reports whether the configuration is usable, returning the first
// problem found.
func (c *Config) IsValid() error {
	if len(c.Repositories) == 0 {
		return ErrNoRepositories
	}
	for _, r := range c.Repositories {
		if r.Name == "" {
			return ErrMissingRepositoryName
		}
		if r.URL == "" && c.Remote == "" {
			return fmt.Errorf("%w: %s", ErrMissingCloneURL, r.Name)
		}
	}
	if c.Template != nil {
		if c.Template.Prefix == "" {
			return ErrMissingTemplatePrefix
		}
		if _, ok := c.RepositoryByName(c.Template.Repository); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTemplateRepository, c.Template.Repository)
		}
	}
	return nil
}

// RepositoryByName returns the configured repository with the given name.
func (c *Config) RepositoryByName(name string) (*Repository, bool) {
	for _, r := range c.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// CloneURL returns the URL the given repository is cloned from.
func (c *Config) CloneURL(r *Repository) string {
	if r.URL != "" {
		return r.URL
	}
	return strings.TrimSuffix(c.Remote, "/") + "/" + r.Name + ".git"
}

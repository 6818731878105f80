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

// Package manifest reads and rewrites package.json manifests.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Filename is the manifest file name at a repository root.
const Filename = "package.json"

// dependencyBlocks are the manifest sections scanned for dependency edits.
var dependencyBlocks = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
}

// Manifest is a loaded package.json. Edits are held in memory until Save.
type Manifest struct {
	path  string
	data  map[string]any
	dirty bool
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(contents, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Manifest{path: path, data: data}, nil
}

// Path returns the file path the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Name returns the package name, or "" when absent.
func (m *Manifest) Name() string {
	name, _ := m.data["name"].(string)
	return name
}

// Version returns the package version, or "" when absent.
func (m *Manifest) Version() string {
	version, _ := m.data["version"].(string)
	return version
}

// Dependency returns the version range declared for the named package in the
// first dependency block that lists it.
func (m *Manifest) Dependency(name string) (string, bool) {
	for _, block := range dependencyBlocks {
		deps, ok := m.data[block].(map[string]any)
		if !ok {
			continue
		}
		if spec, ok := deps[name].(string); ok {
			return spec, true
		}
	}
	return "", false
}

// SetDependency replaces the version range for the named package in every
// dependency block that lists it. It reports whether any block was changed.
func (m *Manifest) SetDependency(name, spec string) bool {
	changed := false
	for _, block := range dependencyBlocks {
		deps, ok := m.data[block].(map[string]any)
		if !ok {
			continue
		}
		current, ok := deps[name].(string)
		if !ok || current == spec {
			continue
		}
		deps[name] = spec
		changed = true
	}
	if changed {
		m.dirty = true
	}
	return changed
}

// Dirty reports whether the manifest has unsaved edits.
func (m *Manifest) Dirty() bool {
	return m.dirty
}

// Save writes the manifest back to its file if it has unsaved edits.
// Object keys serialize in sorted order, matching conventional package.json
// formatting.
func (m *Manifest) Save() error {
	if !m.dirty {
		return nil
	}
	contents, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return err
	}
	contents = append(contents, '\n')
	if err := os.WriteFile(m.path, contents, 0644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

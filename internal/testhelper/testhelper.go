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

// Package testhelper provides git fixture helpers for tests.
package testhelper

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireCommand skips the test if the specified command is not found in
// PATH, so that `go test ./...` passes on machines without the tool.
func RequireCommand(t *testing.T, cmd string) {
	t.Helper()
	if _, err := exec.LookPath(cmd); err != nil {
		t.Skipf("skipping test because %s is not installed", cmd)
	}
}

// InitRepo creates a git repository in dir with one commit on branch main
// and returns dir.
func InitRepo(t *testing.T, dir string) string {
	t.Helper()
	RequireCommand(t, "git")
	Git(t, dir, "init", "-q")
	Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test")
	WriteFile(t, filepath.Join(dir, "README.md"), "# test fixture\n")
	Git(t, dir, "add", ".")
	Git(t, dir, "commit", "-q", "-m", "initial commit")
	return dir
}

// CreateBranch creates a branch at HEAD without switching to it.
func CreateBranch(t *testing.T, dir, name string) {
	t.Helper()
	Git(t, dir, "branch", name)
}

// Clone clones the repository at src into dst.
func Clone(t *testing.T, src, dst string) {
	t.Helper()
	RequireCommand(t, "git")
	cmd := exec.Command("git", "clone", "-q", src, dst)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git clone: %v\n%s", err, output)
	}
}

// Git runs a git command in dir, failing the test on error.
func Git(t *testing.T, dir string, arg ...string) {
	t.Helper()
	cmd := exec.Command("git", arg...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", arg, err, output)
	}
}

// WriteFile writes contents to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

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

package template

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/testhelper"
)

func TestLatestBranch(t *testing.T) {
	for _, test := range []struct {
		name     string
		branches []string
		prefix   string
		want     string
		wantOK   bool
	}{
		{
			name: "major version dominates prerelease stage",
			branches: []string{
				"pack-1.0.0",
				"pack-1.1.0-beta.2",
				"pack-2.0.0-alpha.1",
				"lib-9.9.9",
			},
			prefix: "pack",
			want:   "pack-2.0.0-alpha.1",
			wantOK: true,
		},
		{
			name: "release outranks prereleases of same version",
			branches: []string{
				"pack-1.1.0-rc.3",
				"pack-1.1.0",
				"pack-1.1.0-beta.9",
			},
			prefix: "pack",
			want:   "pack-1.1.0",
			wantOK: true,
		},
		{
			name:     "no matches",
			branches: []string{"lib-1.0.0", "lib-2.0.0"},
			prefix:   "pack",
			wantOK:   false,
		},
		{
			name:     "sole malformed candidate still selected",
			branches: []string{"pack-1.0.0-unknown.5"},
			prefix:   "pack",
			want:     "pack-1.0.0-unknown.5",
			wantOK:   true,
		},
		{
			name:     "prefix requires hyphen separator",
			branches: []string{"package-1.0.0"},
			prefix:   "pack",
			wantOK:   false,
		},
		{
			name:     "empty input",
			branches: nil,
			prefix:   "pack",
			wantOK:   false,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, ok := LatestBranch(test.branches, test.prefix)
			if ok != test.wantOK {
				t.Fatalf("LatestBranch() ok = %v, want %v", ok, test.wantOK)
			}
			if got != test.want {
				t.Errorf("LatestBranch() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestMatchingBranches(t *testing.T) {
	branches := []string{
		"pack-2.0.0-alpha.1",
		"lib-9.9.9",
		"pack-1.0.0",
		"main",
		"pack-1.1.0-beta.2",
	}
	got := MatchingBranches(branches, "pack")
	want := []string{"pack-1.0.0", "pack-1.1.0-beta.2", "pack-2.0.0-alpha.1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MatchingBranches() mismatch (-want +got):\n%s", diff)
	}
}

func templateFixture(t *testing.T) (*config.Config, string) {
	t.Helper()
	remote := testhelper.InitRepo(t, t.TempDir())
	testhelper.CreateBranch(t, remote, "pack-1.0.0")
	testhelper.CreateBranch(t, remote, "pack-1.1.0-beta.2")
	testhelper.CreateBranch(t, remote, "pack-2.0.0-alpha.1")
	testhelper.CreateBranch(t, remote, "lib-9.9.9")

	root := t.TempDir()
	testhelper.Clone(t, remote, filepath.Join(root, "site-template"))

	cfg := &config.Config{
		Remote: "https://github.com/apiforge",
		Repositories: []*config.Repository{
			{Name: "site-template"},
		},
		Template: &config.Template{
			Repository: "site-template",
			Prefix:     "pack",
		},
	}
	cfg.SetDefaults()
	return cfg, root
}

func TestCheckout(t *testing.T) {
	cfg, root := templateFixture(t)
	got, err := Checkout(t.Context(), cfg, root)
	if err != nil {
		t.Fatal(err)
	}
	if want := "pack-2.0.0-alpha.1"; got != want {
		t.Errorf("Checkout() = %q, want %q", got, want)
	}

	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = filepath.Join(root, "site-template")
	out, err := cmd.Output()
	if err != nil {
		t.Fatal(err)
	}
	if head := strings.TrimSpace(string(out)); head != "pack-2.0.0-alpha.1" {
		t.Errorf("HEAD = %q, want %q", head, "pack-2.0.0-alpha.1")
	}
}

func TestCheckoutNoMatchingBranches(t *testing.T) {
	cfg, root := templateFixture(t)
	cfg.Template.Prefix = "nothing"
	_, err := Checkout(t.Context(), cfg, root)
	if !errors.Is(err, ErrNoBranches) {
		t.Errorf("Checkout() = %v, want %v", err, ErrNoBranches)
	}
}

func TestCheckoutDirtyWorkingTree(t *testing.T) {
	cfg, root := templateFixture(t)
	testhelper.WriteFile(t, filepath.Join(root, "site-template", "scratch.txt"), "dirty\n")
	if _, err := Checkout(t.Context(), cfg, root); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCheckoutNotConfigured(t *testing.T) {
	cfg := &config.Config{}
	if _, err := Checkout(t.Context(), cfg, t.TempDir()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Checkout() = %v, want %v", err, ErrNotConfigured)
	}
}

func TestList(t *testing.T) {
	cfg, root := templateFixture(t)
	got, err := List(t.Context(), cfg, root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"pack-1.0.0", "pack-1.1.0-beta.2", "pack-2.0.0-alpha.1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

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

package command

import (
	"fmt"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	if err := Run(t.Context(), "sh", "-c", "true"); err != nil {
		t.Fatal(err)
	}
}

func TestRunError(t *testing.T) {
	err := Run(t.Context(), "sh", "-c", "echo failing-for-a-reason >&2; exit 1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failing-for-a-reason") {
		t.Errorf("error should include the command output, got: %v", err)
	}
}

func TestRunIn(t *testing.T) {
	dir := t.TempDir()
	if err := RunIn(t.Context(), dir, "sh", "-c", "test \"$(pwd)\" = \""+dir+"\""); err != nil {
		t.Fatalf("RunIn() = %v, want nil", err)
	}
}

func TestRunWithEnv_SetsAndVerifiesVariable(t *testing.T) {
	const (
		name  = "WSOPS_TEST_VAR"
		value = "value"
	)
	err := RunWithEnv(t.Context(), map[string]string{name: value},
		"sh", "-c", fmt.Sprintf("test \"$%s\" = \"%s\"", name, value))
	if err != nil {
		t.Fatalf("RunWithEnv() = %v, want nil", err)
	}
}

func TestRunWithEnv_VariableNotSetFailsValidation(t *testing.T) {
	const (
		name  = "WSOPS_TEST_VAR"
		value = "value"
	)
	err := RunWithEnv(t.Context(), map[string]string{},
		"sh", "-c", fmt.Sprintf("test \"$%s\" = \"%s\"", name, value))
	if err == nil {
		t.Fatal("RunWithEnv() = nil, want non-nil")
	}
}

func TestOutput(t *testing.T) {
	got, err := Output(t.Context(), "", "sh", "-c", "echo hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello\n" {
		t.Errorf("Output() = %q, want %q", got, "hello\n")
	}
}

func TestOutputErrorIncludesStderr(t *testing.T) {
	_, err := Output(t.Context(), "", "sh", "-c", "echo oops >&2; exit 1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "oops") {
		t.Errorf("error should include stderr, got: %v", err)
	}
}

func TestGetExecutablePath(t *testing.T) {
	for _, test := range []struct {
		name      string
		overrides map[string]string
		command   string
		want      string
	}{
		{
			name:      "override found",
			overrides: map[string]string{"git": "/usr/local/bin/git"},
			command:   "git",
			want:      "/usr/local/bin/git",
		},
		{
			name:      "no override",
			overrides: map[string]string{"cargo": "/usr/bin/cargo"},
			command:   "git",
			want:      "git",
		},
		{
			name:    "nil overrides",
			command: "git",
			want:    "git",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := GetExecutablePath(test.overrides, test.command); got != test.want {
				t.Errorf("GetExecutablePath() = %q, want %q", got, test.want)
			}
		})
	}
}

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

package registry

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tarballContents = "tarball bytes"

// newFakeRegistry serves abbreviated metadata for @apiforge/docs-theme with
// the given dist-tags document.
func newFakeRegistry(t *testing.T, distTags string) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/@apiforge%2Fdocs-theme", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != abbreviatedMetadataAccept {
			t.Errorf("Accept = %q, want %q", got, abbreviatedMetadataAccept)
		}
		shasum := fmt.Sprintf("%x", sha256.Sum256([]byte(tarballContents)))
		fmt.Fprintf(w, `{
			%s
			"versions": {
				"2.0.0": {"dist": {"tarball": "%s/tarballs/docs-theme-2.0.0.tgz", "shasum": "%s"}},
				"2.1.0": {"dist": {"tarball": "%s/tarballs/docs-theme-2.1.0.tgz", "shasum": "0000"}}
			}
		}`, distTags, server.URL, shasum, server.URL)
	})
	mux.HandleFunc("/tarballs/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tarballContents)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLatestFromDistTag(t *testing.T) {
	server := newFakeRegistry(t, `"dist-tags": {"latest": "2.1.0"},`)
	client := New(server.URL)
	got, err := client.Latest(t.Context(), "@apiforge/docs-theme")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2.1.0"; got != want {
		t.Errorf("Latest() = %q, want %q", got, want)
	}
}

func TestLatestFallsBackToMaxVersion(t *testing.T) {
	server := newFakeRegistry(t, `"dist-tags": {},`)
	client := New(server.URL)
	got, err := client.Latest(t.Context(), "@apiforge/docs-theme")
	if err != nil {
		t.Fatal(err)
	}
	if want := "2.1.0"; got != want {
		t.Errorf("Latest() = %q, want %q", got, want)
	}
}

func TestLatestNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)
	client := New(server.URL)
	if _, err := client.Latest(t.Context(), "@apiforge/absent"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLatestNoVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"dist-tags": {}, "versions": {}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := New(server.URL)
	_, err := client.Latest(t.Context(), "some-package")
	if !errors.Is(err, ErrNoVersions) {
		t.Errorf("Latest() = %v, want %v", err, ErrNoVersions)
	}
}

func TestVerify(t *testing.T) {
	server := newFakeRegistry(t, `"dist-tags": {"latest": "2.1.0"},`)
	client := New(server.URL)
	if err := client.Verify(t.Context(), "@apiforge/docs-theme", "2.0.0"); err != nil {
		t.Errorf("Verify() = %v, want nil", err)
	}
	err := client.Verify(t.Context(), "@apiforge/docs-theme", "2.1.0")
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Verify() = %v, want %v", err, ErrChecksumMismatch)
	}
	if err := client.Verify(t.Context(), "@apiforge/docs-theme", "9.9.9"); err == nil {
		t.Error("expected error for unpublished version, got nil")
	}
}

func TestMetadataURL(t *testing.T) {
	client := New("https://registry.example/")
	for _, test := range []struct {
		pkg  string
		want string
	}{
		{"left-pad", "https://registry.example/left-pad"},
		{"@apiforge/docs-theme", "https://registry.example/@apiforge%2Fdocs-theme"},
	} {
		if got := client.metadataURL(test.pkg); got != test.want {
			t.Errorf("metadataURL(%q) = %q, want %q", test.pkg, got, test.want)
		}
	}
}

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

// Package registry fetches package metadata from the package registry.
//
// The client speaks the npm-compatible metadata protocol: GET
// <registry>/<package> returns a JSON document with dist-tags and the
// published versions. There is no retry, backoff, or caching; failures are
// reported to the caller as-is.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/apiforge/wsops/internal/semver"
)

// abbreviatedMetadataAccept asks the registry for the abbreviated metadata
// document, which omits readmes and other bulk fields.
const abbreviatedMetadataAccept = "application/vnd.npm.install-v1+json"

var (
	// ErrNoVersions is returned when a package has no published versions
	// and no latest dist-tag.
	ErrNoVersions = errors.New("package has no published versions")

	// ErrChecksumMismatch is returned by Verify when a downloaded tarball
	// does not match its registry-declared checksum.
	ErrChecksumMismatch = errors.New("tarball checksum mismatch")
)

// Client queries a package registry.
type Client struct {
	// BaseURL is the registry root, without a trailing slash.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to
	// [http.DefaultClient].
	HTTPClient *http.Client
}

// New returns a Client for the registry at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// metadata is the abbreviated registry document for a package.
type metadata struct {
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]versionMetadata `json:"versions"`
}

type versionMetadata struct {
	Dist dist `json:"dist"`
}

type dist struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
}

// Latest returns the newest published version of pkg: the "latest" dist-tag
// when present, otherwise the maximum of the published versions.
func (c *Client) Latest(ctx context.Context, pkg string) (string, error) {
	md, err := c.metadata(ctx, pkg)
	if err != nil {
		return "", err
	}
	if v := md.DistTags["latest"]; v != "" {
		return v, nil
	}
	versions := make([]string, 0, len(md.Versions))
	for v := range md.Versions {
		versions = append(versions, v)
	}
	if v := semver.MaxVersion(versions...); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoVersions, pkg)
}

// Verify downloads the tarball for the given package version and compares
// its SHA-256 checksum against the registry-declared one.
func (c *Client) Verify(ctx context.Context, pkg, version string) error {
	md, err := c.metadata(ctx, pkg)
	if err != nil {
		return err
	}
	vm, ok := md.Versions[version]
	if !ok {
		return fmt.Errorf("version %s of %s is not published", version, pkg)
	}
	got, err := c.checksum(ctx, vm.Dist.Tarball)
	if err != nil {
		return err
	}
	if got != vm.Dist.Shasum {
		return fmt.Errorf("%w for %s@%s: got %s, registry declares %s",
			ErrChecksumMismatch, pkg, version, got, vm.Dist.Shasum)
	}
	return nil
}

func (c *Client) metadata(ctx context.Context, pkg string) (*metadata, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL(pkg), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", abbreviatedMetadataAccept)
	response, err := c.httpClient().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return nil, fmt.Errorf("http error fetching metadata for %s: %s", pkg, response.Status)
	}
	var md metadata
	if err := json.NewDecoder(response.Body).Decode(&md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata for %s: %w", pkg, err)
	}
	return &md, nil
}

// checksum downloads the content at url and returns its SHA-256 checksum as
// a hex string.
func (c *Client) checksum(ctx context.Context, url string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	response, err := c.httpClient().Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return "", fmt.Errorf("http error in download %s", response.Status)
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, response.Body); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// metadataURL builds the metadata endpoint for pkg. The slash in a scoped
// package name must be percent-encoded in the request path.
func (c *Client) metadataURL(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		pkg = strings.Replace(pkg, "/", "%2F", 1)
	}
	return c.BaseURL + "/" + pkg
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

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

// Package semver implements the version ordering used for release-line
// branches and published package versions.
//
// Release-line versions have the form MAJOR.MINOR.PATCH, optionally followed
// by -STAGE.NUMBER where STAGE is one of alpha, beta or rc. The ordering
// intentionally diverges from SemVer 2.0.0: the stage set is closed, and a
// version with an unrecognized pre-release suffix sorts below every
// recognized pre-release rather than being rejected.
package semver

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Pre-release stages recognized in release-line versions, in ascending
// maturity order.
const (
	StageAlpha = "alpha"
	StageBeta  = "beta"
	StageRC    = "rc"
)

const (
	// releaseSentinel outranks every parsed component, so a final release
	// sorts after any pre-release of the same version core.
	releaseSentinel = math.MaxInt32

	// fallbackSentinel ranks an unrecognized pre-release suffix below every
	// recognized stage (rank >= 0) and below any release.
	fallbackSentinel = -1
)

var stageRanks = map[string]int{
	StageAlpha: 0,
	StageBeta:  1,
	StageRC:    2,
}

// Key converts a version string into its ordered comparison components: the
// numeric segments of the version core followed by a two-component pre-release
// tail. Key never fails; any input produces a key. Unparseable core segments
// read as zero and an unrecognized pre-release suffix degrades to the
// low-rank sentinel tail.
func Key(version string) []int {
	core, prerelease, found := strings.Cut(version, "-")

	var key []int
	for _, segment := range strings.Split(core, ".") {
		n, _ := strconv.Atoi(segment)
		key = append(key, n)
	}

	if !found {
		return append(key, releaseSentinel, releaseSentinel)
	}

	if stage, number, ok := strings.Cut(prerelease, "."); ok {
		rank, known := stageRanks[stage]
		n, err := strconv.Atoi(number)
		if known && err == nil && n >= 0 {
			return append(key, rank, n)
		}
	}
	return append(key, fallbackSentinel, fallbackSentinel)
}

// Compare orders two version strings by their keys. It returns -1 if a is
// older than b, 0 if they rank equally, and +1 if a is newer than b. Keys
// compare positionally; a position past a key's own end reads as zero.
func Compare(a, b string) int {
	ka, kb := Key(a), Key(b)
	for i := range max(len(ka), len(kb)) {
		var ca, cb int
		if i < len(ka) {
			ca = ka[i]
		}
		if i < len(kb) {
			cb = kb[i]
		}
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
	}
	return 0
}

// MaxVersion returns the largest published version among the provided version
// strings, under standard SemVer ordering. Strings that are not valid
// versions, or that carry a "v" prefix, are skipped. It returns "" when
// nothing qualifies.
func MaxVersion(versionStrings ...string) string {
	versions := make([]string, 0, len(versionStrings))
	for _, versionString := range versionStrings {
		// Published package versions must not have a "v" prefix.
		if strings.HasPrefix(versionString, "v") {
			continue
		}

		// Prepend "v" internally so that we can use [semver.IsValid] and
		// [semver.Sort].
		vPrefixedString := "v" + versionString
		if !semver.IsValid(vPrefixedString) {
			continue
		}
		versions = append(versions, vPrefixedString)
	}

	if len(versions) == 0 {
		return ""
	}

	semver.Sort(versions)

	// Trim the "v" we prepended to make use of [semver].
	return strings.TrimPrefix(versions[len(versions)-1], "v")
}

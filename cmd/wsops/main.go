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

// Wsops manages a multi-repository development workspace: it clones and
// updates sibling repositories, switches package dependencies between
// registry versions and local checkouts, and tracks the release-line
// branches of the site template repository.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apiforge/wsops/internal/wsops"
)

func main() {
	if err := wsops.Run(context.Background(), os.Args...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

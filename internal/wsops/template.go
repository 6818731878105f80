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

package wsops

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/apiforge/wsops/internal/template"
)

func templateCommand() *cli.Command {
	return &cli.Command{
		Name:      "template",
		Usage:     "manage the versioned template repository",
		UsageText: "wsops template <command> [flags]",
		Commands: []*cli.Command{
			templateListCommand(),
			templateCheckoutCommand(),
		},
	}
}

func templateListCommand() *cli.Command {
	var (
		dir     string
		verbose bool
	)
	return &cli.Command{
		Name:      "list",
		Usage:     "list release-line branches, oldest to newest",
		UsageText: "wsops template list [flags]",
		Flags: []cli.Flag{
			workspaceFlag(&dir),
			verboseFlag(&verbose),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogger(verbose)
			cfg, err := loadConfig(dir)
			if err != nil {
				return err
			}
			branches, err := template.List(ctx, cfg, dir)
			if err != nil {
				return err
			}
			for _, b := range branches {
				fmt.Println(b)
			}
			return nil
		},
	}
}

func templateCheckoutCommand() *cli.Command {
	var (
		dir     string
		verbose bool
	)
	return &cli.Command{
		Name:      "checkout",
		Usage:     "check out the latest release-line branch",
		UsageText: "wsops template checkout [flags]",
		Description: `Fetches the template remote, selects the branch with the highest
version for the configured prefix, checks it out, and hard resets the
checkout to the remote ref. The working tree must be clean.`,
		Flags: []cli.Flag{
			workspaceFlag(&dir),
			verboseFlag(&verbose),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogger(verbose)
			cfg, err := loadConfig(dir)
			if err != nil {
				return err
			}
			branch, err := template.Checkout(ctx, cfg, dir)
			if err != nil {
				return err
			}
			fmt.Println(branch)
			return nil
		},
	}
}

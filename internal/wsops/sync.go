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

	"github.com/apiforge/wsops/internal/workspace"
)

func syncCommand() *cli.Command {
	var (
		dir     string
		verbose bool
	)
	return &cli.Command{
		Name:      "sync",
		Usage:     "clone or update sibling repositories",
		UsageText: "wsops sync [flags] [repo...]",
		Description: `Clones every configured repository that has no checkout yet and
fast-forwards the ones that do, then regenerates the editor workspace file.
Repositories with local changes are skipped with a warning. Name one or more
repositories to limit the sync.`,
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
			return workspace.Sync(ctx, cfg, dir, cmd.Args().Slice())
		},
	}
}

func statusCommand() *cli.Command {
	var (
		dir     string
		verbose bool
	)
	return &cli.Command{
		Name:      "status",
		Usage:     "report local changes across the workspace",
		UsageText: "wsops status [flags]",
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
			statuses, err := workspace.Status(ctx, cfg, dir)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				switch {
				case s.Missing:
					fmt.Printf("%s: not cloned (run wsops sync)\n", s.Name)
				case len(s.Changed) == 0:
					fmt.Printf("%s: clean\n", s.Name)
				default:
					fmt.Printf("%s: %d changed file(s)\n", s.Name, len(s.Changed))
					for _, f := range s.Changed {
						fmt.Printf("  %s\n", f)
					}
				}
			}
			return nil
		},
	}
}

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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/apiforge/wsops/internal/linker"
	"github.com/apiforge/wsops/internal/registry"
)

func linkCommand() *cli.Command {
	var (
		dir     string
		verbose bool
	)
	return &cli.Command{
		Name:      "link",
		Usage:     "switch package dependencies to local checkouts",
		UsageText: "wsops link [flags] [package...]",
		Description: `Rewrites consumer manifests so that dependencies on locally
checked-out packages become file references. With no arguments every linkable
package is linked. Run your package manager's install afterwards to apply the
manifest changes.`,
		Flags: []cli.Flag{
			workspaceFlag(&dir),
			verboseFlag(&verbose),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogger(verbose)
			l, err := newLinker(dir)
			if err != nil {
				return err
			}
			if err := l.Link(ctx, cmd.Args().Slice()); err != nil {
				return err
			}
			slog.Info("manifests rewritten; run your package manager install to apply")
			return nil
		},
	}
}

func unlinkCommand() *cli.Command {
	var (
		dir     string
		verbose bool
		verify  bool
	)
	return &cli.Command{
		Name:      "unlink",
		Usage:     "restore registry versions for linked packages",
		UsageText: "wsops unlink [flags] [package...]",
		Description: `Rewrites file references in consumer manifests back to caret ranges
on the latest published version of each package. With no arguments every
linkable package is unlinked.`,
		Flags: []cli.Flag{
			workspaceFlag(&dir),
			verboseFlag(&verbose),
			&cli.BoolFlag{
				Name:        "verify",
				Usage:       "verify registry tarball checksums before rewriting",
				Destination: &verify,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogger(verbose)
			l, err := newLinker(dir)
			if err != nil {
				return err
			}
			if err := l.Unlink(ctx, cmd.Args().Slice(), verify); err != nil {
				return err
			}
			slog.Info("manifests rewritten; run your package manager install to apply")
			return nil
		},
	}
}

func newLinker(root string) (*linker.Linker, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	return &linker.Linker{
		Config:   cfg,
		Root:     root,
		Registry: registry.New(cfg.Registry),
	}, nil
}

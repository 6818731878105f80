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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/yaml"
)

var errConfigExists = errors.New("workspace configuration already exists")

func initCommand() *cli.Command {
	var dir string
	return &cli.Command{
		Name:      "init",
		Usage:     "scaffold a starter wsops.yaml",
		UsageText: "wsops init [flags]",
		Flags: []cli.Flag{
			workspaceFlag(&dir),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := filepath.Join(dir, ConfigFileName)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%w: %s", errConfigExists, path)
			}
			cfg := starterConfig()
			if err := yaml.Write(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s; edit the remote and repositories, then run wsops sync\n", path)
			return nil
		},
	}
}

// starterConfig is the scaffold written by wsops init. The entries are
// placeholders for the operator to edit.
func starterConfig() *config.Config {
	return &config.Config{
		Remote: "https://github.com/your-org",
		Repositories: []*config.Repository{
			{Name: "docs-theme", Package: "@your-org/docs-theme"},
			{Name: "docs-site"},
			{Name: "site-template"},
		},
		Template: &config.Template{
			Repository: "site-template",
			Prefix:     "pack",
		},
	}
}

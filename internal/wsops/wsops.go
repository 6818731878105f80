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

// Package wsops implements the wsops command line interface: workspace
// automation for the multi-repository documentation tooling ecosystem.
package wsops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/apiforge/wsops/internal/command"
	"github.com/apiforge/wsops/internal/config"
	"github.com/apiforge/wsops/internal/yaml"
)

// ConfigFileName is the workspace configuration file, relative to the
// workspace root.
const ConfigFileName = "wsops.yaml"

var errConfigNotFound = errors.New("workspace configuration not found (run wsops init)")

// Run executes the wsops CLI with the given command line arguments.
func Run(ctx context.Context, args ...string) error {
	cmd := &cli.Command{
		Name:      "wsops",
		Usage:     "manage the multi-repository development workspace",
		UsageText: "wsops <command> [flags]",
		Commands: []*cli.Command{
			initCommand(),
			syncCommand(),
			statusCommand(),
			linkCommand(),
			unlinkCommand(),
			templateCommand(),
			versionCommand(),
		},
	}
	return cmd.Run(ctx, args)
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
	command.Verbose = verbose
}

// loadConfig reads wsops.yaml from the workspace root, applies defaults, and
// validates the result.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := yaml.Read[config.Config](filepath.Join(root, ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigNotFound, err)
	}
	cfg.SetDefaults()
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

func workspaceFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "workspace",
		Aliases:     []string{"C"},
		Value:       ".",
		Usage:       "workspace root `directory`",
		Destination: dst,
	}
}

func verboseFlag(dst *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "enable debug logging and command echoing",
		Destination: dst,
	}
}

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/pagepatch/cmd/pagepatch/commands"
	"github.com/walteh/pagepatch/cmd/pagepatch/opts"
)

// run executes the command line and returns the process exit code. Document
// failures alone exit 0 unless --strict is set.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "❌ %s\n", color.New(color.FgRed).Sprint(err.Error()))
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &opts.RootOpts{Stdout: stdout, Stderr: stderr}

	cmd := &cobra.Command{
		Use:   "pagepatch",
		Short: "Inject content into documents at anchored locations",
		Long: `pagepatch applies ordered regular-expression rules to text documents.

Each rule finds the first match of its pattern and replaces that span with a
template. Documents are backed up before they are written, and every document
is reported as passed or failed on its own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.Parallel < 1 {
				o.Parallel = 1
			}
			logger := setupLogging(stderr, o.Debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewCheckCmd(o),
		commands.NewRestoreCmd(o),
		commands.NewPresetsCmd(o),
		commands.NewVersionCmd(o),
	)

	return cmd
}

func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "manifest file (.yaml, .hcl or .json)")
	cmd.PersistentFlags().StringVarP(&o.Preset, "preset", "p", "", "use a bundled preset instead of a manifest file")
	cmd.PersistentFlags().StringVarP(&o.Dir, "dir", "C", ".", "root directory document paths are relative to")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Strict, "strict", false, "exit 1 when any document fails")
	cmd.PersistentFlags().IntVarP(&o.Parallel, "parallel", "j", 1, "documents processed concurrently")
}

// setupLogging returns the structured logger. User facing output goes
// through pkg/log, so zerolog stays quiet unless --debug is set.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

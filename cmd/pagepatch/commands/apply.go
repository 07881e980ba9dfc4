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

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/cmd/pagepatch/opts"
	"github.com/walteh/pagepatch/pkg/log"
	"github.com/walteh/pagepatch/pkg/operation"
	"github.com/walteh/pagepatch/pkg/status"
)

// ErrDocumentsFailed is returned under --strict when any document failed.
var ErrDocumentsFailed = errors.Base("one or more documents failed")

type patchFlags struct {
	dryRun   bool
	noBackup bool
	diff     bool
	summary  bool
}

func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Patch documents in place",
		Long: `Apply reads each document named by the manifest, writes a backup next
to it, runs the manifest's rules in order and saves the result.

A document whose required rule does not match is reported as failed and left
untouched on disk. Other documents are still processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.Context(), o, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "patch in memory only, write nothing")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "do not write backups before patching")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a line diff for each document (dry run only)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary table after the run")

	return cmd
}

func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would change",
		Long:  `Check is apply --dry-run --diff: every rule is evaluated but nothing is written.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.Context(), o, patchFlags{dryRun: true, diff: true, summary: summary})
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a summary table after the run")
	return cmd
}

func runPatch(ctx context.Context, o *opts.RootOpts, flags patchFlags) error {
	m, err := o.Manifest(ctx)
	if err != nil {
		return err
	}
	store, err := o.Store()
	if err != nil {
		return err
	}
	plans, err := operation.BuildPlans(ctx, m, store)
	if err != nil {
		return err
	}

	op := operation.NewApplyOperation(operation.Options{
		Store:    store,
		Marker:   m.BackupMarker,
		DryRun:   flags.dryRun,
		NoBackup: flags.noBackup,
	})

	logger := o.Logger(ctx)
	ctx = log.NewContext(ctx, logger)
	logger.Header(fmt.Sprintf("%s %s, %d documents", op.Name(), manifestLabel(m.Name, m.Location()), len(plans)))
	if len(plans) == 0 {
		logger.Warning("no documents matched the manifest")
		return nil
	}

	runner := operation.NewRunner(o.Parallel).WithDiff(flags.diff)
	outcomes := runner.Run(ctx, op, plans)

	verb := "patched"
	if flags.dryRun {
		verb = "checked"
		logger.LogNewline()
		logger.Info("dry run, no documents or backups were written")
	}
	return finish(o, logger, outcomes, verb, flags.summary)
}

func finish(o *opts.RootOpts, logger *log.Logger, outcomes []operation.Outcome, verb string, summary bool) error {
	rows := operation.Rows(outcomes)
	if summary {
		logger.LogNewline()
		if err := status.RenderSummary(o.Stdout, rows); err != nil {
			return err
		}
	}

	ok := status.Count(rows)
	logger.Summary(verb, ok, len(rows))

	if o.Strict && ok < len(rows) {
		return errors.Errorf("%w: %d of %d", ErrDocumentsFailed, len(rows)-ok, len(rows))
	}
	return nil
}

func manifestLabel(name, location string) string {
	switch {
	case name != "":
		return name
	case location != "":
		return location
	default:
		return "manifest"
	}
}

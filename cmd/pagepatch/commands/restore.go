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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/pagepatch/cmd/pagepatch/opts"
	"github.com/walteh/pagepatch/pkg/log"
	"github.com/walteh/pagepatch/pkg/operation"
)

func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Copy backups back over their documents",
		Long: `Restore replaces each document named by the manifest with the backup
written by the last apply. Backups are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			logger := o.Logger(ctx)
			ctx = log.NewContext(ctx, logger)
			logger.Header(fmt.Sprintf("restore %s, %d documents", manifestLabel(m.Name, m.Location()), len(plans)))
			if len(plans) == 0 {
				logger.Warning("no documents matched the manifest")
				return nil
			}

			op := operation.NewRestoreOperation(operation.Options{Store: store, Marker: m.BackupMarker})
			outcomes := operation.NewRunner(o.Parallel).Run(ctx, op, plans)
			return finish(o, logger, outcomes, "restored", summary)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print a summary table after the run")
	return cmd
}

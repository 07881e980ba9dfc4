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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/pagepatch/pkg/log"
	"github.com/walteh/pagepatch/pkg/patch"
	"github.com/walteh/pagepatch/pkg/status"
)

// 🏃 OperationRunner executes an operation over a list of documents
type OperationRunner struct {
	formatter status.Formatter
	parallel  int
	diff      bool
}

// 🏗️ NewRunner creates a new runner. parallel <= 1 processes documents one
// after another.
func NewRunner(parallel int) *OperationRunner {
	return &OperationRunner{
		formatter: status.NewDefaultFormatter(),
		parallel:  parallel,
	}
}

// WithDiff makes the runner print the changed lines of each dry-run document
func (r *OperationRunner) WithDiff(diff bool) *OperationRunner {
	r.diff = diff
	return r
}

// 🏃 Run processes every plan and returns the outcomes in plan order. A
// failing document never stops the others. The console logger is taken
// from ctx (see log.NewContext).
func (r *OperationRunner) Run(ctx context.Context, op Operation, plans []Plan) []Outcome {
	zerolog.Ctx(ctx).Debug().Str("operation", op.Name()).Int("documents", len(plans)).Int("parallel", r.parallel).Msg("running operation")

	if r.parallel > 1 {
		return r.runAsync(ctx, op, plans)
	}
	return r.runSync(ctx, op, plans)
}

// 🔄 runSync reports each document as soon as it is done
func (r *OperationRunner) runSync(ctx context.Context, op Operation, plans []Plan) []Outcome {
	outcomes := make([]Outcome, len(plans))
	for i, plan := range plans {
		outcomes[i] = process(ctx, op, plan)
		r.report(ctx, plan, outcomes[i])
	}
	return outcomes
}

// ⚡ runAsync fans documents out to a bounded group and reports them in plan
// order once all are done, so console blocks never interleave
func (r *OperationRunner) runAsync(ctx context.Context, op Operation, plans []Plan) []Outcome {
	outcomes := make([]Outcome, len(plans))

	var g errgroup.Group
	g.SetLimit(r.parallel)
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			outcomes[i] = process(ctx, op, plan)
			return nil
		})
	}
	_ = g.Wait()

	for i, plan := range plans {
		r.report(ctx, plan, outcomes[i])
	}
	return outcomes
}

func process(ctx context.Context, op Operation, plan Plan) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Path: plan.Path, Err: err}
	}
	return op.Process(ctx, plan)
}

// 📝 report prints the per-rule lines and the document status line
func (r *OperationRunner) report(ctx context.Context, plan Plan, o Outcome) {
	logger := log.FromContext(ctx)
	if o.Result != nil {
		logger.StartDocument(ctx, log.DocumentEntry{
			Path:   o.Path,
			Rules:  len(plan.Rules),
			Backup: o.Backup,
			DryRun: o.DryRun,
		})
		for i, ro := range o.Result.Outcomes {
			entry := log.RuleEntry{
				Rule:   ro.Rule,
				Status: ro.Status.String(),
				Span:   [2]int{ro.Start, ro.End},
			}
			if i < len(plan.Rules) {
				entry.Required = plan.Rules[i].Required()
			}
			if o.DryRun && ro.Status == patch.StatusApplied {
				entry.Status = "would-apply"
			}
			logger.LogRule(ctx, entry)
		}
		if r.diff && o.DryRun && o.Result.WasModified() {
			logger.Block(status.ColorizeDiff(status.Diff(o.Result.Original, o.Result.Text)))
		}
		logger.EndDocument(ctx)
	}

	row := o.Row()
	logger.Print(status.Colorize(row.Status, r.formatter.FormatDocument(row)))
	if o.Err != nil {
		logger.Error(o.Err.Error())
	}
}

// 📊 Rows converts outcomes into summary rows
func Rows(outcomes []Outcome) []status.Row {
	rows := make([]status.Row, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, o.Row())
	}
	return rows
}

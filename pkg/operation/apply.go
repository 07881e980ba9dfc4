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

	"github.com/walteh/pagepatch/pkg/patch"
)

// 📦 NewApplyOperation creates the patch operation
func NewApplyOperation(opts Options) Operation {
	return &applyOperation{opts: opts}
}

// 📦 applyOperation implements load, patch, backup, persist
type applyOperation struct {
	opts Options
}

func (op *applyOperation) Name() string {
	if op.opts.DryRun {
		return "check"
	}
	return "apply"
}

// 🏃 Process runs one document through the patcher. The backup holds the
// text read before any rule ran and is written just before the document;
// a failed required rule leaves both untouched.
func (op *applyOperation) Process(ctx context.Context, plan Plan) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("document", plan.Path).Logger()
	out := Outcome{Path: plan.Path, DryRun: op.opts.DryRun}

	content, err := op.opts.Store.Read(ctx, plan.Path)
	if err != nil {
		out.Err = err
		return out
	}

	result, err := patch.Patch(ctx, content, plan.Rules)
	out.Result = result
	if err != nil {
		logger.Debug().Err(err).Msg("patch failed, document left untouched")
		out.Err = err
		return out
	}

	if op.opts.DryRun || !result.WasModified() {
		return out
	}

	// the snapshot is only committed when the document is about to change, so
	// a run that changes nothing keeps the backup of an earlier run
	if !op.opts.NoBackup {
		backup, err := op.opts.Store.Backup(ctx, plan.Path, result.Original, op.opts.Marker)
		if err != nil {
			out.Err = err
			return out
		}
		out.Backup = backup
	}

	if err := op.opts.Store.Write(ctx, plan.Path, result.Text); err != nil {
		out.Err = err
		return out
	}

	logger.Debug().Int("applied", result.AppliedCount()).Msg("document patched")
	return out
}

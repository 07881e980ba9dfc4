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
)

// ♻️ NewRestoreOperation creates the operation that copies backups back over
// their documents
func NewRestoreOperation(opts Options) Operation {
	return &restoreOperation{opts: opts}
}

type restoreOperation struct {
	opts Options
}

func (op *restoreOperation) Name() string {
	return "restore"
}

// 🏃 Process restores one document from its backup
func (op *restoreOperation) Process(ctx context.Context, plan Plan) Outcome {
	out := Outcome{Path: plan.Path}
	if err := op.opts.Store.Restore(ctx, plan.Path, op.opts.Marker); err != nil {
		out.Err = err
		return out
	}
	out.Restored = true
	return out
}

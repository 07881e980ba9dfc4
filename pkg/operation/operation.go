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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/pkg/config"
	"github.com/walteh/pagepatch/pkg/document"
	"github.com/walteh/pagepatch/pkg/patch"
	"github.com/walteh/pagepatch/pkg/status"
)

// 🎯 Operation is one pass over a set of documents
type Operation interface {
	// Name is a short label used in headers and logs
	Name() string
	// Process handles a single document. It never returns an error: failures
	// are recorded on the Outcome so other documents are unaffected.
	Process(ctx context.Context, plan Plan) Outcome
}

// 📄 Plan is one concrete document and the compiled rules to apply to it
type Plan struct {
	Path  string
	Rules []patch.Rule
}

// 🔧 Options contains configuration shared by operations
type Options struct {
	// Store reads and writes documents
	Store *document.Store
	// Marker is inserted into backup file names
	Marker string
	// DryRun patches in memory only; no backup, no write
	DryRun bool
	// NoBackup skips the pre-patch snapshot
	NoBackup bool
}

// 📦 Outcome is the result of processing one document
type Outcome struct {
	Path   string
	Backup string        // backup written for this document, if any
	Result *patch.Result // nil when the document could not be read
	Err    error
	DryRun bool
	// Restored is set by the restore operation
	Restored bool
}

// Status classifies the outcome for reporting
func (o Outcome) Status() status.DocumentStatus {
	switch {
	case o.Err != nil:
		return status.StatusFailed
	case o.Restored:
		return status.StatusRestored
	case o.Result == nil:
		return status.StatusUnknown
	case o.DryRun:
		return status.StatusPreview
	case o.Result.WasModified():
		return status.StatusPatched
	default:
		return status.StatusUnchanged
	}
}

// Row converts the outcome into a summary row
func (o Outcome) Row() status.Row {
	row := status.Row{
		Path:   o.Path,
		Status: o.Status(),
		Backup: o.Backup,
	}
	if o.Result != nil {
		row.Applied = o.Result.AppliedCount()
		row.Total = len(o.Result.Outcomes)
	}
	if o.Err != nil {
		row.Kind = string(patch.KindOf(o.Err))
		row.Detail = o.Err.Error()
	}
	return row
}

// 🗺️ BuildPlans expands every document entry of the manifest into concrete
// paths and compiles their rules. A path selected by several entries gets
// the rules of each entry, in manifest order, and is still processed once.
func BuildPlans(ctx context.Context, m *config.Manifest, store *document.Store) ([]Plan, error) {
	logger := zerolog.Ctx(ctx)

	var plans []Plan
	index := make(map[string]int)

	for _, doc := range m.Documents {
		defs, err := m.Definitions(doc)
		if err != nil {
			return nil, errors.Errorf("planning %s: %w", doc.Path, err)
		}
		rules, err := patch.CompileAll(defs)
		if err != nil {
			return nil, errors.Errorf("planning %s: %w", doc.Path, err)
		}

		paths, err := store.Expand(ctx, doc.Path)
		if err != nil {
			return nil, errors.Errorf("planning %s: %w", doc.Path, err)
		}
		if len(paths) == 0 {
			logger.Warn().Str("pattern", doc.Path).Msg("pattern matched no documents")
		}

		for _, p := range paths {
			if i, ok := index[p]; ok {
				plans[i].Rules = append(plans[i].Rules, rules...)
				continue
			}
			index[p] = len(plans)
			plans = append(plans, Plan{Path: p, Rules: append([]patch.Rule(nil), rules...)})
		}
	}

	return plans, nil
}

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

package status

// 📊 DocumentStatus is the final state of one document after a run
type DocumentStatus int

const (
	StatusUnknown   DocumentStatus = iota
	StatusPatched                  // Rules applied and the document was rewritten
	StatusUnchanged                // Every rule skipped or already applied
	StatusPreview                  // Dry run, nothing written
	StatusFailed                   // Read, backup, match or write failure
	StatusRestored                 // Document copied back from its backup
)

// String returns a string representation of DocumentStatus
func (s DocumentStatus) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusUnchanged:
		return "unchanged"
	case StatusPreview:
		return "preview"
	case StatusFailed:
		return "failed"
	case StatusRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// OK reports whether the status counts as a success in the run summary
func (s DocumentStatus) OK() bool {
	switch s {
	case StatusPatched, StatusUnchanged, StatusPreview, StatusRestored:
		return true
	default:
		return false
	}
}

// 📋 Row is one line of the end-of-run summary
type Row struct {
	Path    string
	Status  DocumentStatus
	Applied int    // rules that replaced a span
	Total   int    // rules evaluated
	Backup  string // backup path, empty if none was written
	Kind    string // failure kind, empty on success
	Detail  string // error message, empty on success
}

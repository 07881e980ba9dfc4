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

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter defines how document outcomes are rendered on one line
type Formatter interface {
	// FormatDocument formats a document status message
	FormatDocument(row Row) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatDocument formats a document status message with emojis
func (f *DefaultFormatter) FormatDocument(row Row) string {
	rules := fmt.Sprintf("(%d/%d rules)", row.Applied, row.Total)
	switch row.Status {
	case StatusPatched:
		return fmt.Sprintf("✨ Patched %s %s", row.Path, rules)
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s %s", row.Path, rules)
	case StatusPreview:
		return fmt.Sprintf("🔍 Would patch %s %s", row.Path, rules)
	case StatusRestored:
		return fmt.Sprintf("♻️  Restored %s", row.Path)
	case StatusFailed:
		if row.Kind != "" {
			return fmt.Sprintf("❌ Failed %s [%s]", row.Path, row.Kind)
		}
		return fmt.Sprintf("❌ Failed %s", row.Path)
	default:
		return fmt.Sprintf("❔ %s", row.Path)
	}
}

// 🎨 Colorize wraps a formatted line in the color for its status
func Colorize(s DocumentStatus, line string) string {
	switch s {
	case StatusPatched, StatusRestored:
		return color.GreenString(line)
	case StatusUnchanged:
		return color.HiBlackString(line)
	case StatusPreview:
		return color.CyanString(line)
	case StatusFailed:
		return color.RedString(line)
	default:
		return line
	}
}

// 🎨 ColorizeDiff colors + and - lines of a diff produced by Diff
func ColorizeDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			b.WriteString(color.GreenString("%s", line))
		case strings.HasPrefix(line, "- "):
			b.WriteString(color.RedString("%s", line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

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

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleLine(symbol, name, kind, status string) string {
	return fmt.Sprintf("%s %-24s %-10s %s", symbol, name, kind, status)
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_document",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.StartDocument(ctx, DocumentEntry{Path: "html/ailegal.html", Rules: 3})
				logger.LogRule(ctx, RuleEntry{Rule: "title", Status: "applied", Required: true, Span: [2]int{10, 20}})
				logger.LogRule(ctx, RuleEntry{Rule: "stylesheet", Status: "skipped", Span: [2]int{-1, -1}})
				logger.LogRule(ctx, RuleEntry{Rule: "features", Status: "failed", Required: true, Span: [2]int{-1, -1}})
				logger.LogRule(ctx, RuleEntry{Rule: "badge", Status: "already-applied", Span: [2]int{-1, -1}})
				logger.EndDocument(ctx)
			},
			wantLogs: []string{
				"◆ html/ailegal.html • patch, 3 rules",
				ruleLine("✓", "title", "required", "applied"),
				ruleLine("-", "stylesheet", "optional", "skipped"),
				ruleLine("✗", "features", "required", "failed"),
				ruleLine("•", "badge", "optional", "already-applied"),
			},
		},
		{
			name: "log_dry_run_document",
			op: func(t *testing.T, logger *Logger) {
				logger.StartDocument(context.Background(), DocumentEntry{Path: "a.html", Rules: 1, DryRun: true})
			},
			wantLogs: []string{
				"◆ a.html • dry run, 1 rules",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("patching 2 documents")
			},
			wantLogs: []string{
				"pagepatch • patching 2 documents",
			},
		},
		{
			name: "log_summary",
			op: func(t *testing.T, logger *Logger) {
				logger.Summary("patched", 1, 2)
			},
			wantLogs: []string{
				"📊 1/2 documents patched",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.Nop())

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestLoggerStructuredOutput(t *testing.T) {
	var structured bytes.Buffer
	logger := New(io.Discard, zerolog.New(&structured))

	logger.StartDocument(context.Background(), DocumentEntry{Path: "a.html", Rules: 2, Backup: "a.m.html.backup"})
	logger.LogRule(context.Background(), RuleEntry{Rule: "title", Status: "applied", Required: true, Span: [2]int{3, 9}})

	out := structured.String()
	assert.Contains(t, out, `"document":"a.html"`)
	assert.Contains(t, out, `"backup":"a.m.html.backup"`)
	assert.Contains(t, out, `"rule":"title"`)
	assert.Contains(t, out, `"span":[3,9]`)
}

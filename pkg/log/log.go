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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	ruleIndent  = 4  // spaces to indent rule entries
	nameWidth   = 24 // width for the rule name
	kindWidth   = 10 // width for required/optional
	statusWidth = 16 // width for status text
)

// 🎯 RuleEntry is one line of per-rule output
type RuleEntry struct {
	Rule     string // Rule name
	Status   string // applied, skipped, already-applied, failed, would-apply
	Required bool   // Whether a miss aborts the document
	Span     [2]int // Matched byte span, {-1, -1} when nothing matched
}

// 📄 DocumentEntry describes the document currently being processed
type DocumentEntry struct {
	Path   string // Document path
	Rules  int    // Number of rules to apply
	Backup string // Backup path, empty when backups are disabled
	DryRun bool   // Whether the document will be written
}

// 🎯 Logger writes human readable status lines to the console and mirrors
// every line to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *DocumentEntry
	rules   []RuleEntry
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRule formats a rule entry for display
func formatRule(e RuleEntry) string {
	var symbol rune
	var symbolColor color.Attribute
	switch e.Status {
	case "applied", "would-apply":
		symbol = '✓'
		symbolColor = color.FgGreen
	case "already-applied":
		symbol = '•'
		symbolColor = color.FgCyan
	case "failed":
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	kind := "optional"
	kindColor := color.FgYellow
	if e.Required {
		kind = "required"
		kindColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", ruleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, e.Rule),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, kind)),
		fmt.Sprintf("%-*s", statusWidth, e.Status))
}

// 📝 StartDocument prints the document header and resets per-rule tracking
func (l *Logger) StartDocument(ctx context.Context, doc DocumentEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &doc
	l.rules = nil

	mode := "patch"
	if doc.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(doc.Path),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%s, %d rules", mode, doc.Rules))

	l.zlog.Info().
		Str("document", doc.Path).
		Int("rules", doc.Rules).
		Str("backup", doc.Backup).
		Bool("dry_run", doc.DryRun).
		Msg("starting document")
}

// 📝 LogRule prints one rule outcome
func (l *Logger) LogRule(ctx context.Context, e RuleEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = append(l.rules, e)

	fmt.Fprintln(l.console, formatRule(e))

	l.zlog.Info().
		Str("rule", e.Rule).
		Str("status", e.Status).
		Bool("required", e.Required).
		Ints("span", e.Span[:]).
		Msg("rule outcome")
}

// 📝 EndDocument logs a summary of the current document
func (l *Logger) EndDocument(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	l.zlog.Info().
		Str("document", l.current.Path).
		Int("outcomes", len(l.rules)).
		Msg("document complete")

	l.current = nil
	l.rules = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pagepatch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Print writes a preformatted line as is
func (l *Logger) Print(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Block writes multi-line text indented under the current document
func (l *Logger) Block(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(l.console, "%*s%s\n", ruleIndent+2, "", line)
	}
	l.zlog.Debug().Str("block", text).Msg("detail")
}

// 📊 Summary logs the overall count, e.g. "2/2 documents patched"
func (l *Logger) Summary(verb string, ok, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := color.FgGreen
	if ok < total {
		c = color.FgYellow
	}
	fmt.Fprintf(l.console, "\n📊 %s\n", color.New(c).Sprintf("%d/%d documents %s", ok, total, verb))
	l.zlog.Info().Str("verb", verb).Int("ok", ok).Int("total", total).Msg("run complete")
}

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

package patch

import (
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📊 Status is what happened to a single rule during a patch.
type Status int

const (
	StatusApplied        Status = iota // pattern matched and the span was replaced
	StatusSkipped                      // optional rule, pattern did not match
	StatusAlreadyApplied               // sentinel already present, rule not evaluated
	StatusFailed                       // required rule, pattern did not match
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusAlreadyApplied:
		return "already-applied"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🎯 Outcome records the effect of one rule.
type Outcome struct {
	Rule   string
	Status Status
	// Start and End delimit the matched span in the text the rule was applied
	// to. Both are -1 when the rule did not match.
	Start, End int
	// Replacement is the computed text inserted in place of the span.
	Replacement string
}

// 📦 Result is the output of Patch.
type Result struct {
	Original string
	Text     string
	Outcomes []Outcome
}

// AppliedCount is the number of rules that replaced a span.
func (r *Result) AppliedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusApplied {
			n++
		}
	}
	return n
}

// WasModified reports whether the final text differs from the original.
func (r *Result) WasModified() bool {
	return r.Text != r.Original
}

// 🔄 Patch applies rules to text in order, each rule seeing the output of the
// previous one. Only the first match of each rule is replaced.
//
// A required rule that does not match stops the fold: the returned Result
// holds the outcomes so far and the error wraps ErrNoMatch. Callers must not
// persist Result.Text in that case.
func Patch(ctx context.Context, text string, rules []Rule) (*Result, error) {
	result := &Result{
		Original: text,
		Text:     text,
		Outcomes: make([]Outcome, 0, len(rules)),
	}

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return result, errors.Errorf("patching: %w", err)
		}

		outcome := rule.apply(result.Text)
		result.Outcomes = append(result.Outcomes, outcome.Outcome)

		if outcome.Status == StatusFailed {
			return result, errors.Errorf("rule %q: %w", rule.name, ErrNoMatch)
		}
		if outcome.Status == StatusApplied {
			result.Text = outcome.text
		}
	}

	return result, nil
}

type applied struct {
	Outcome
	text string
}

func (r Rule) apply(text string) applied {
	out := applied{Outcome: Outcome{Rule: r.name, Start: -1, End: -1}, text: text}

	if r.sentinel != "" && strings.Contains(text, r.sentinel) {
		out.Status = StatusAlreadyApplied
		return out
	}

	loc := r.pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		if r.required {
			out.Status = StatusFailed
		} else {
			out.Status = StatusSkipped
		}
		return out
	}

	var replacement string
	if r.literal {
		replacement = r.template
	} else {
		replacement = string(r.pattern.ExpandString(nil, r.template, text, loc))
	}

	out.Status = StatusApplied
	out.Start, out.End = loc[0], loc[1]
	out.Replacement = replacement
	out.text = text[:loc[0]] + replacement + text[loc[1]:]
	return out
}

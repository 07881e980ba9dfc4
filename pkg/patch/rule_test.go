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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		def       Definition
		wantError string
	}{
		{
			name: "valid_rule",
			def:  Definition{Name: "ok", Pattern: `(a)(b)`, Template: "$2$1"},
		},
		{
			name: "valid_named_group",
			def:  Definition{Name: "ok", Pattern: `(?P<head></head>)`, Template: "x${head}"},
		},
		{
			name: "escaped_dollar",
			def:  Definition{Name: "ok", Pattern: `a`, Template: "$$5"},
		},
		{
			name:      "missing_name",
			def:       Definition{Pattern: `a`},
			wantError: "name is required",
		},
		{
			name:      "missing_pattern",
			def:       Definition{Name: "p"},
			wantError: "pattern is required",
		},
		{
			name:      "bad_pattern",
			def:       Definition{Name: "p", Pattern: `(unclosed`},
			wantError: "compiling pattern",
		},
		{
			name:      "group_out_of_range",
			def:       Definition{Name: "p", Pattern: `(a)`, Template: "$2"},
			wantError: "references group 2 but pattern has 1",
		},
		{
			name:      "unknown_named_group",
			def:       Definition{Name: "p", Pattern: `(a)`, Template: "${nope}"},
			wantError: `unknown group "nope"`,
		},
		{
			name:      "digit_followed_by_letters_is_a_name",
			def:       Definition{Name: "p", Pattern: `(a)`, Template: "$1x"},
			wantError: `unknown group "1x"`,
		},
		{
			name: "literal_skips_template_check",
			def:  Definition{Name: "p", Pattern: `(a)`, Template: "${nope}", Literal: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Compile(tt.def)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRule)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.def.Name, rule.Name())
			assert.Equal(t, tt.def.Template, rule.Template())
			assert.NotNil(t, rule.Pattern())
		})
	}
}

func TestCompileAll_DuplicateNames(t *testing.T) {
	_, err := CompileAll([]Definition{
		{Name: "same", Pattern: `a`},
		{Name: "same", Pattern: `b`},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), `duplicate name "same"`)
}

func TestCompile_DotMatchesNewline(t *testing.T) {
	rule, err := Compile(Definition{Name: "span", Pattern: `<a>.*?</a>`})
	require.NoError(t, err)
	assert.True(t, rule.Pattern().MatchString("<a>\nline\n</a>"))
}

func TestTemplateRefs(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{name: "none", template: "plain text", want: nil},
		{name: "numbered", template: "$1 and ${2}", want: []string{"1", "2"}},
		{name: "named", template: "${head}$tail", want: []string{"head", "tail"}},
		{name: "escaped", template: "$$1", want: nil},
		{name: "trailing_dollar", template: "cost $", want: nil},
		{name: "unclosed_brace", template: "${1", want: nil},
		{name: "punctuation_after_dollar", template: "$.", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, templateRefs(tt.template))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindRead, KindOf(ErrRead))
	assert.Equal(t, KindBackup, KindOf(ErrBackup))
	assert.Equal(t, KindWrite, KindOf(ErrWrite))
	assert.Equal(t, KindInvalidRule, KindOf(ErrInvalidRule))
	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
}

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
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📝 Definition is the declarative form of a rule, as read from a manifest.
type Definition struct {
	Name     string `json:"name" yaml:"name"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Template string `json:"template" yaml:"template"`
	Literal  bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Sentinel string `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
}

// 🔧 Rule is a compiled, immutable patch rule.
type Rule struct {
	name     string
	pattern  *regexp.Regexp
	template string
	literal  bool
	required bool
	sentinel string
}

func (r Rule) Name() string            { return r.name }
func (r Rule) Pattern() *regexp.Regexp { return r.pattern }
func (r Rule) Template() string        { return r.template }
func (r Rule) Literal() bool           { return r.literal }
func (r Rule) Required() bool          { return r.required }
func (r Rule) Sentinel() string        { return r.sentinel }

// 🏭 Compile validates a single definition and compiles its pattern. The
// pattern is compiled with the s flag so that . also matches newlines.
func Compile(def Definition) (Rule, error) {
	if strings.TrimSpace(def.Name) == "" {
		return Rule{}, errors.Errorf("%w: name is required", ErrInvalidRule)
	}
	if def.Pattern == "" {
		return Rule{}, errors.Errorf("%w: rule %q: pattern is required", ErrInvalidRule, def.Name)
	}

	re, err := regexp.Compile("(?s)" + def.Pattern)
	if err != nil {
		return Rule{}, errors.Errorf("%w: rule %q: compiling pattern: %s", ErrInvalidRule, def.Name, err)
	}

	if !def.Literal {
		if err := checkTemplate(re, def.Template); err != nil {
			return Rule{}, errors.Errorf("%w: rule %q: %s", ErrInvalidRule, def.Name, err)
		}
	}

	return Rule{
		name:     def.Name,
		pattern:  re,
		template: def.Template,
		literal:  def.Literal,
		required: def.Required,
		sentinel: def.Sentinel,
	}, nil
}

// 📚 CompileAll compiles an ordered rule list. Names must be unique.
func CompileAll(defs []Definition) ([]Rule, error) {
	rules := make([]Rule, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if _, ok := seen[def.Name]; ok {
			return nil, errors.Errorf("%w: rule %d: duplicate name %q", ErrInvalidRule, i, def.Name)
		}
		seen[def.Name] = struct{}{}

		rule, err := Compile(def)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// checkTemplate rejects references to groups the pattern does not define.
// regexp.Expand would silently expand those to the empty string.
func checkTemplate(re *regexp.Regexp, template string) error {
	names := make(map[string]struct{})
	for _, n := range re.SubexpNames() {
		if n != "" {
			names[n] = struct{}{}
		}
	}

	for _, ref := range templateRefs(template) {
		if n, err := strconv.Atoi(ref); err == nil {
			if n > re.NumSubexp() {
				return errors.Errorf("template references group %d but pattern has %d", n, re.NumSubexp())
			}
			continue
		}
		if _, ok := names[ref]; !ok {
			return errors.Errorf("template references unknown group %q", ref)
		}
	}
	return nil
}

// templateRefs lists the group references in a template using the same
// lexical rules as regexp.Expand: $name, ${name}, and $$ for a literal dollar.
func templateRefs(template string) []string {
	var refs []string
	for {
		i := strings.IndexByte(template, '$')
		if i < 0 || i+1 >= len(template) {
			return refs
		}
		template = template[i+1:]

		switch template[0] {
		case '$':
			template = template[1:]
		case '{':
			end := strings.IndexByte(template, '}')
			if end < 0 {
				return refs
			}
			if name := template[1:end]; isGroupName(name) {
				refs = append(refs, name)
			}
			template = template[end+1:]
		default:
			end := 0
			for end < len(template) && isNameByte(template[end]) {
				end++
			}
			if end > 0 {
				refs = append(refs, template[:end])
			}
			template = template[end:]
		}
	}
}

func isGroupName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

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

package config

import (
	"fmt"
	"path"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/pkg/patch"
)

// DefaultBackupMarker is used when a manifest does not set backup_marker.
const DefaultBackupMarker = "backup"

// 🔄 Rule is a patch rule as written in a manifest.
type Rule struct {
	Name         string `json:"name" yaml:"name"`
	Pattern      string `json:"pattern" yaml:"pattern"`
	Template     string `json:"template,omitempty" yaml:"template,omitempty"`
	TemplateFile string `json:"template_file,omitempty" yaml:"template_file,omitempty"` // relative to the manifest
	Literal      bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
	Required     bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Sentinel     string `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
}

// Definition converts r into the patch package's form.
func (r Rule) Definition() patch.Definition {
	return patch.Definition{
		Name:     r.Name,
		Pattern:  r.Pattern,
		Template: r.Template,
		Literal:  r.Literal,
		Required: r.Required,
		Sentinel: r.Sentinel,
	}
}

// 📄 Document selects one or more files and the rules to apply to them.
type Document struct {
	// Path is a file path or a doublestar pattern
	Path string `json:"path" yaml:"path"`
	// Rules names shared rules, in order
	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty"`
	// InlineRules are applied after the shared rules
	InlineRules []Rule `json:"inline_rules,omitempty" yaml:"inline_rules,omitempty"`
}

// 📚 Manifest is the complete description of one patch run.
type Manifest struct {
	Name         string     `json:"name,omitempty" yaml:"name,omitempty"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	BackupMarker string     `json:"backup_marker,omitempty" yaml:"backup_marker,omitempty"`
	Rules        []Rule     `json:"rules,omitempty" yaml:"rules,omitempty"`
	Documents    []Document `json:"documents" yaml:"documents"`

	location string
}

// Location is the file the manifest was loaded from, if any.
func (m *Manifest) Location() string {
	return m.location
}

// 🎯 Definitions returns the ordered rule list for doc: the shared rules it
// names, then its inline rules. A document that names no rules and has no
// inline rules gets every shared rule in manifest order.
func (m *Manifest) Definitions(doc Document) ([]patch.Definition, error) {
	shared := make(map[string]Rule, len(m.Rules))
	for _, r := range m.Rules {
		shared[r.Name] = r
	}

	var defs []patch.Definition
	if len(doc.Rules) == 0 && len(doc.InlineRules) == 0 {
		for _, r := range m.Rules {
			defs = append(defs, r.Definition())
		}
		return defs, nil
	}

	for _, name := range doc.Rules {
		r, ok := shared[name]
		if !ok {
			return nil, errors.Errorf("document %s: unknown rule %q", doc.Path, name)
		}
		defs = append(defs, r.Definition())
	}
	for _, r := range doc.InlineRules {
		defs = append(defs, r.Definition())
	}
	return defs, nil
}

// 🔍 Validate checks the manifest and fills defaults. Rule patterns and
// templates are compiled so that errors surface before any file is touched.
func (m *Manifest) Validate() error {
	if m.BackupMarker == "" {
		m.BackupMarker = DefaultBackupMarker
	}
	if strings.ContainsAny(m.BackupMarker, `/\`) {
		return errors.Errorf("backup_marker %q must not contain path separators", m.BackupMarker)
	}

	if len(m.Documents) == 0 {
		return errors.Errorf("at least one document is required")
	}

	seen := make(map[string]struct{}, len(m.Rules))
	for i, r := range m.Rules {
		if r.Name == "" {
			return errors.Errorf("rules[%d]: name is required", i)
		}
		if _, ok := seen[r.Name]; ok {
			return errors.Errorf("rules[%d]: duplicate rule name %q", i, r.Name)
		}
		seen[r.Name] = struct{}{}
	}

	for i := range m.Documents {
		doc := &m.Documents[i]
		if strings.TrimSpace(doc.Path) == "" {
			return errors.Errorf("documents[%d]: path is required", i)
		}
		if path.IsAbs(doc.Path) || strings.HasPrefix(doc.Path, `\`) || (len(doc.Path) > 1 && doc.Path[1] == ':') {
			return errors.Errorf("documents[%d]: path %q must be relative to the root directory", i, doc.Path)
		}
		doc.Path = path.Clean(strings.ReplaceAll(doc.Path, `\`, "/"))

		defs, err := m.Definitions(*doc)
		if err != nil {
			return errors.Errorf("documents[%d]: %w", i, err)
		}
		if len(defs) == 0 {
			return errors.Errorf("documents[%d]: no rules to apply", i)
		}
		if _, err := patch.CompileAll(defs); err != nil {
			return errors.Errorf("documents[%d] %s: %w", i, doc.Path, err)
		}
	}

	return nil
}

// 📝 String returns a one-line summary of the manifest.
func (m *Manifest) String() string {
	name := m.Name
	if name == "" {
		name = m.location
	}
	if name == "" {
		name = "manifest"
	}
	return fmt.Sprintf("%s: %d documents, %d shared rules, backup marker %q", name, len(m.Documents), len(m.Rules), m.BackupMarker)
}

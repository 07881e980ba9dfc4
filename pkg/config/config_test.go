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
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		extra       map[string]string
		errContains string
		check       func(t *testing.T, m *Manifest)
	}{
		{
			name: "valid_yaml",
			file: "pages.yaml",
			config: `
name: pages
backup_marker: one-stop
rules:
  - name: title
    pattern: '<h1 class="page-title">.*?</h1>'
    template: '<h1 class="page-title">New</h1>'
    required: true
  - name: stylesheet
    pattern: '(<link rel="stylesheet" href="css/a.css">)'
    template: "${1}\n<link rel=\"stylesheet\" href=\"css/b.css\">"
    sentinel: css/b.css
documents:
  - path: html/one.html
    rules: [title, stylesheet]
  - path: ./html/two.html
    rules: [stylesheet]
    inline_rules:
      - name: footer
        pattern: '</footer>'
        template: '<p>extra</p></footer>'
`,
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "pages", m.Name)
				assert.Equal(t, "one-stop", m.BackupMarker)
				require.Len(t, m.Rules, 2, "should have 2 shared rules")
				assert.True(t, m.Rules[0].Required, "title should be required")
				assert.Equal(t, "css/b.css", m.Rules[1].Sentinel)
				assert.Equal(t, "${1}\n<link rel=\"stylesheet\" href=\"css/b.css\">", m.Rules[1].Template)
				require.Len(t, m.Documents, 2)
				assert.Equal(t, "html/two.html", m.Documents[1].Path, "path should be cleaned")

				defs, err := m.Definitions(m.Documents[1])
				require.NoError(t, err)
				require.Len(t, defs, 2)
				assert.Equal(t, "stylesheet", defs[0].Name)
				assert.Equal(t, "footer", defs[1].Name)
			},
		},
		{
			name: "valid_hcl",
			file: "pages.hcl",
			config: `
backup_marker = "one-stop"

rule "stylesheet" {
  pattern  = "(<link rel=\"stylesheet\" href=\"css/a.css\">)"
  template = "$${1}\n<link rel=\"stylesheet\" href=\"css/b.css\">"
  sentinel = "css/b.css"
}

document "html/one.html" {
  rules = ["stylesheet"]

  rule "badge" {
    pattern  = "</h1>"
    template = trimspace(<<-EOT
      </h1><span class="ai-badge">badge</span>
    EOT
    )
    required = true
  }
}
`,
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "one-stop", m.BackupMarker)
				require.Len(t, m.Rules, 1)
				assert.Equal(t, "${1}\n<link rel=\"stylesheet\" href=\"css/b.css\">", m.Rules[0].Template, "escaped interpolation should be literal")
				require.Len(t, m.Documents, 1)
				require.Len(t, m.Documents[0].InlineRules, 1)
				assert.Equal(t, `</h1><span class="ai-badge">badge</span>`, m.Documents[0].InlineRules[0].Template)
				assert.True(t, m.Documents[0].InlineRules[0].Required)
			},
		},
		{
			name: "valid_json",
			file: "pages.json",
			config: `{
  "rules": [{"name": "css", "pattern": "</head>", "template": "<link href=\"x.css\"></head>"}],
  "documents": [{"path": "index.html"}]
}`,
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, DefaultBackupMarker, m.BackupMarker, "marker should default")
				defs, err := m.Definitions(m.Documents[0])
				require.NoError(t, err)
				require.Len(t, defs, 1, "document without rules gets every shared rule")
			},
		},
		{
			name: "template_file",
			file: "pages.yaml",
			config: `
rules:
  - name: features
    pattern: '(<div class="container">)'
    template_file: fragments/features.html
documents:
  - path: index.html
`,
			extra: map[string]string{
				"fragments/features.html": "${1}\n<section>features</section>",
			},
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "${1}\n<section>features</section>", m.Rules[0].Template)
			},
		},
		{
			name: "template_and_template_file",
			file: "pages.yaml",
			config: `
rules:
  - name: features
    pattern: 'a'
    template: b
    template_file: fragments/features.html
documents:
  - path: index.html
`,
			errContains: "mutually exclusive",
		},
		{
			name: "unknown_field",
			file: "pages.yaml",
			config: `
documents:
  - path: index.html
    nope: true
`,
			errContains: "parsing YAML",
		},
		{
			name: "unknown_rule_reference",
			file: "pages.yaml",
			config: `
rules:
  - name: a
    pattern: a
documents:
  - path: index.html
    rules: [b]
`,
			errContains: `unknown rule "b"`,
		},
		{
			name: "invalid_pattern",
			file: "pages.yaml",
			config: `
rules:
  - name: broken
    pattern: '(unclosed'
documents:
  - path: index.html
`,
			errContains: "compiling pattern",
		},
		{
			name: "template_references_missing_group",
			file: "pages.json",
			config: `{
  "rules": [{"name": "g", "pattern": "(a)", "template": "$3"}],
  "documents": [{"path": "index.html"}]
}`,
			errContains: "references group 3",
		},
		{
			name:        "no_documents",
			file:        "pages.yaml",
			config:      "rules: []\n",
			errContains: "at least one document",
		},
		{
			name: "absolute_document_path",
			file: "pages.yaml",
			config: `
rules:
  - name: a
    pattern: a
documents:
  - path: /etc/passwd
`,
			errContains: "must be relative",
		},
		{
			name: "duplicate_rule_names",
			file: "pages.yaml",
			config: `
rules:
  - name: a
    pattern: a
  - name: a
    pattern: b
documents:
  - path: index.html
`,
			errContains: `duplicate rule name "a"`,
		},
		{
			name: "marker_with_separator",
			file: "pages.yaml",
			config: `
backup_marker: a/b
rules:
  - name: a
    pattern: a
documents:
  - path: index.html
`,
			errContains: "path separators",
		},
		{
			name:        "unsupported_extension",
			file:        "pages.toml",
			config:      "x = 1",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfgPath := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.config), 0o644), "writing config file")
			for name, content := range tt.extra {
				p := filepath.Join(dir, filepath.FromSlash(name))
				require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
				require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
			}

			m, err := Load(testContext(t), cfgPath)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, cfgPath, m.Location())
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"presets/demo/manifest.yaml": {Data: []byte(`
name: demo
rules:
  - name: body
    pattern: '(<body>)'
    template_file: body.html
documents:
  - path: index.html
`)},
		"presets/demo/body.html": {Data: []byte("${1}<p>hi</p>")},
	}

	m, err := LoadFS(testContext(t), fsys, "presets/demo/manifest.yaml")
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "${1}<p>hi</p>", m.Rules[0].Template, "template_file should resolve next to the manifest")
	assert.Equal(t, "presets/demo/manifest.yaml", m.Location())
}

func TestManifest_String(t *testing.T) {
	m := &Manifest{
		Name:         "pages",
		BackupMarker: "one-stop",
		Rules:        []Rule{{Name: "a"}},
		Documents:    []Document{{Path: "a.html"}, {Path: "b.html"}},
	}
	assert.Equal(t, `pages: 2 documents, 1 shared rules, backup marker "one-stop"`, m.String())
}

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
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Load loads a manifest from a file on disk. Template files are resolved
// relative to the manifest's directory.
func Load(ctx context.Context, file string) (*Manifest, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", file, err)
	}

	m, err := LoadFS(ctx, os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	m.location = file
	return m, nil
}

// 🎯 LoadFS loads a manifest named name from fsys. Template files are
// resolved relative to the directory of name inside fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("manifest", name).Msg("loading manifest")

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	p := GetParser(name)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", name)
	}

	m, err := p.Parse(ctx, name, data)
	if err != nil {
		return nil, errors.Errorf("parsing manifest: %w", err)
	}
	m.location = name

	if err := resolveTemplates(fsys, path.Dir(name), m); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest: %w", err)
	}

	logger.Debug().Str("manifest", m.String()).Msg("loaded manifest")
	return m, nil
}

// resolveTemplates replaces every template_file with the file's content.
func resolveTemplates(fsys fs.FS, dir string, m *Manifest) error {
	resolve := func(r *Rule) error {
		if r.TemplateFile == "" {
			return nil
		}
		if r.Template != "" {
			return errors.Errorf("rule %q: template and template_file are mutually exclusive", r.Name)
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, r.TemplateFile))
		if err != nil {
			return errors.Errorf("rule %q: reading template_file: %w", r.Name, err)
		}
		r.Template = string(data)
		return nil
	}

	for i := range m.Rules {
		if err := resolve(&m.Rules[i]); err != nil {
			return err
		}
	}
	for i := range m.Documents {
		for j := range m.Documents[i].InlineRules {
			if err := resolve(&m.Documents[i].InlineRules[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

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

// Package preset bundles ready-made patch manifests.
package preset

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/pkg/config"
)

//go:embed library/*/*
var bundled embed.FS

const root = "library"

// manifest file names probed inside a preset directory, in order
var manifestNames = []string{"manifest.yaml", "manifest.yml", "manifest.hcl", "manifest.json"}

// ErrUnknownPreset is returned when no bundled preset has the requested name.
var ErrUnknownPreset = errors.Base("unknown preset")

// 📦 Preset describes a bundled manifest
type Preset struct {
	Name        string
	Description string
	Documents   int
}

// FS exposes the bundled presets rooted at the preset directories.
func FS() fs.FS {
	sub, err := fs.Sub(bundled, root)
	if err != nil {
		panic(err) // root is a compile-time constant
	}
	return sub
}

// Names returns the bundled preset names, sorted.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(FS(), ".")
	if err != nil {
		return nil, errors.Errorf("reading presets: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// 📋 List loads every bundled preset and describes it
func List(ctx context.Context) ([]Preset, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	presets := make([]Preset, 0, len(names))
	for _, name := range names {
		m, err := Load(ctx, name)
		if err != nil {
			return nil, err
		}
		presets = append(presets, Preset{
			Name:        name,
			Description: m.Description,
			Documents:   len(m.Documents),
		})
	}
	return presets, nil
}

// 🔍 Load parses and validates the named preset. Template files are resolved
// against the preset's own directory.
func Load(ctx context.Context, name string) (*config.Manifest, error) {
	file, err := manifestFile(name)
	if err != nil {
		return nil, err
	}
	m, err := config.LoadFS(ctx, FS(), file)
	if err != nil {
		return nil, errors.Errorf("loading preset %s: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

func manifestFile(name string) (string, error) {
	if name == "" || !fs.ValidPath(name) || path.Base(name) != name {
		return "", errors.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	for _, candidate := range manifestNames {
		p := path.Join(name, candidate)
		if _, err := fs.Stat(FS(), p); err == nil {
			return p, nil
		}
	}
	return "", errors.Errorf("%w: %q", ErrUnknownPreset, name)
}

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

package opts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/pkg/config"
	"github.com/walteh/pagepatch/pkg/document"
	"github.com/walteh/pagepatch/pkg/log"
	"github.com/walteh/pagepatch/pkg/preset"
)

// DefaultManifests are probed in the document root when neither --config nor
// --preset is given.
var DefaultManifests = []string{".pagepatch.yaml", ".pagepatch.yml", ".pagepatch.hcl", ".pagepatch.json"}

// ErrNoManifest is returned when no manifest source could be found.
var ErrNoManifest = errors.Base("no manifest: use --config, --preset, or add a .pagepatch.yaml")

// RootOpts holds the persistent flags shared by every command.
type RootOpts struct {
	ConfigFile string
	Preset     string
	Dir        string
	Debug      bool
	Strict     bool
	Parallel   int

	Stdout io.Writer
	Stderr io.Writer
}

// 📄 Manifest loads the manifest selected by the flags
func (o *RootOpts) Manifest(ctx context.Context) (*config.Manifest, error) {
	switch {
	case o.ConfigFile != "" && o.Preset != "":
		return nil, errors.New("--config and --preset are mutually exclusive")
	case o.Preset != "":
		return preset.Load(ctx, o.Preset)
	case o.ConfigFile != "":
		return config.Load(ctx, o.ConfigFile)
	}

	for _, name := range DefaultManifests {
		p := filepath.Join(o.root(), name)
		if _, err := os.Stat(p); err == nil {
			zerolog.Ctx(ctx).Debug().Str("manifest", p).Msg("using default manifest")
			return config.Load(ctx, p)
		}
	}
	return nil, errors.WithStack(ErrNoManifest)
}

// 💾 Store opens the document root
func (o *RootOpts) Store() (*document.Store, error) {
	abs, err := filepath.Abs(o.root())
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", o.root(), err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Errorf("document root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("document root %s is not a directory", abs)
	}
	return document.NewOSStore(abs), nil
}

// Logger creates the console logger for a run.
func (o *RootOpts) Logger(ctx context.Context) *log.Logger {
	return log.New(o.Stdout, *zerolog.Ctx(ctx))
}

func (o *RootOpts) root() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

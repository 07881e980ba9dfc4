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

package document

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pagepatch/pkg/patch"
)

const (
	defaultMode  = 0o644
	backupSuffix = ".backup"
	tempSuffix   = ".pagepatch.tmp"
)

// 💾 Store reads, backs up and writes documents on an afero filesystem.
// Paths are slash separated and relative to the filesystem root.
type Store struct {
	fs afero.Fs
}

// 🏭 NewStore creates a store over fs.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// 🏭 NewOSStore creates a store rooted at dir on the local disk.
func NewOSStore(dir string) *Store {
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), filepath.Clean(dir)))
}

// 🔖 BackupPath derives the backup name for a document: the marker and the
// original extension are inserted before a trailing ".backup", so
// html/page.html with marker "one-stop" becomes html/page.one-stop.html.backup.
func BackupPath(p, marker string) string {
	dir, base := path.Split(p)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return dir + stem + "." + marker + ext + backupSuffix
}

// 📖 Read returns the full text of the document at p.
func (s *Store) Read(ctx context.Context, p string) (string, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return "", errors.Errorf("%w %s: %w", patch.ErrRead, p, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", p).Int("bytes", len(data)).Msg("read document")
	return string(data), nil
}

// 📸 Backup writes content verbatim to the backup path for p and returns
// that path. An existing backup is overwritten.
func (s *Store) Backup(ctx context.Context, p, content, marker string) (string, error) {
	backup := BackupPath(p, marker)
	if err := afero.WriteFile(s.fs, backup, []byte(content), s.mode(p)); err != nil {
		return "", errors.Errorf("%w %s: %w", patch.ErrBackup, backup, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", p).Str("backup", backup).Msg("wrote backup")
	return backup, nil
}

// ✍️ Write replaces the document at p with content. The text goes to a
// temporary sibling first and is renamed into place, so a failed write never
// leaves a truncated document.
func (s *Store) Write(ctx context.Context, p, content string) error {
	tmp := p + tempSuffix
	mode := s.mode(p)

	if err := afero.WriteFile(s.fs, tmp, []byte(content), mode); err != nil {
		return errors.Errorf("%w %s: writing temp file: %w", patch.ErrWrite, p, err)
	}

	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Errorf("%w %s: renaming temp file: %w", patch.ErrWrite, p, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", p).Int("bytes", len(content)).Msg("wrote document")
	return nil
}

// ♻️ Restore copies the backup for p back over the document. The backup is
// kept.
func (s *Store) Restore(ctx context.Context, p, marker string) error {
	backup := BackupPath(p, marker)

	data, err := afero.ReadFile(s.fs, backup)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%w %s: backup %s does not exist: %w", patch.ErrRead, p, backup, err)
		}
		return errors.Errorf("%w %s: %w", patch.ErrRead, backup, err)
	}

	if err := s.Write(ctx, p, string(data)); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", p).Str("backup", backup).Msg("restored document")
	return nil
}

// 🌐 Expand resolves a document path pattern. Plain paths are returned as is
// even when they do not exist, so the failure surfaces when the document is
// read. Patterns use doublestar syntax (html/**/*.html) and results are
// sorted; backups and temp files are never matched.
func (s *Store) Expand(ctx context.Context, pattern string) ([]string, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}

	matches, err := doublestar.Glob(afero.NewIOFS(s.fs), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.HasSuffix(m, backupSuffix) || strings.HasSuffix(m, tempSuffix) {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)

	zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Strs("matches", out).Msg("expanded documents")
	return out, nil
}

func (s *Store) mode(p string) os.FileMode {
	info, err := s.fs.Stat(p)
	if err != nil {
		return defaultMode
	}
	return info.Mode().Perm()
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

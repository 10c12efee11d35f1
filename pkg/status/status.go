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

// Package status owns every filesystem touch apifix makes: resolving targets,
// reading them as text and replacing them atomically. It also defines the
// per-file status reported back to the user.
package status

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidText is returned when a target is not valid UTF-8
var ErrInvalidText = errors.Base("invalid text")

// 📊 FileStatus represents what happened to a target
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Calls were rewritten
	StatusUnchanged            // No call matched
	StatusMissing              // Target does not exist
	StatusFailed               // Target could not be processed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 💾 Manager handles all file system operations relative to a base directory
type Manager struct {
	baseDir string
}

// 🏭 NewManager creates a new file manager rooted at baseDir
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = "."
	}
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// BaseDir returns the directory relative paths are resolved against
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 Abs returns the on-disk path for path
func (m *Manager) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// HasMeta reports whether pattern contains glob metacharacters
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{`)
}

// 🔍 Resolve expands glob patterns into file paths. Literal paths are kept
// verbatim, even when they do not exist, so callers can report them.
// Duplicates are dropped and first-seen order is kept.
func (m *Manager) Resolve(ctx context.Context, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	paths := make([]string, 0, len(patterns))
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	}

	for _, pattern := range patterns {
		if !HasMeta(pattern) {
			add(pattern)
			continue
		}

		matches, err := m.glob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
		}

		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}

	logger.Debug().Strs("paths", paths).Msg("resolved targets")
	return paths, nil
}

func (m *Manager) glob(pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	}

	matches, err := doublestar.Glob(os.DirFS(m.baseDir), filepath.ToSlash(filepath.Clean(pattern)), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	for i, match := range matches {
		matches[i] = filepath.FromSlash(match)
	}
	return matches, nil
}

// 📖 ReadText reads the whole file and checks that it is UTF-8 text.
// Not-found and permission errors stay matchable with errors.Is.
func (m *Manager) ReadText(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.Abs(path))
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		return nil, errors.Errorf("%w: %s is not valid UTF-8", ErrInvalidText, path)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read file")
	return content, nil
}

// ✍️ WriteFileAtomic replaces path with content. The data is written to a
// temp file next to the target and renamed over it, so the target is either
// fully old or fully new. The target's permissions are kept and symlinks are
// written through.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.Abs(path)
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	// rename is atomic within a directory
	if err := os.Rename(tmpPath, absPath); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	committed = true

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

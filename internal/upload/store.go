// Package upload stores resume files in a single directory keyed by a
// sanitized filename. Writes are last-write-wins: saving a name that already
// exists overwrites the previous file. Callers must treat the returned
// sanitized name as the record of truth.
package upload

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store is a directory-backed blob store.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates the upload directory if needed and returns a Store over it.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir must not be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory files are stored under.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether the upload directory is present on disk.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// SanitizeFilename reduces a client-supplied filename to a safe single path
// component: path separators become underscores, characters outside
// [A-Za-z0-9._-] are dropped (spaces become underscores), and leading or
// trailing separators, dots and dashes are trimmed. The result contains no
// path separators; it may be empty if nothing safe remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	return strings.Trim(b.String(), "._-")
}

// Save writes the reader's bytes under the sanitized form of name and returns
// the name actually used. An existing file with the same name is overwritten.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	clean := SanitizeFilename(name)
	if clean == "" {
		return "", fmt.Errorf("filename %q is empty after sanitizing", name)
	}

	dst := filepath.Join(s.dir, clean)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", clean, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", clean, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", clean, err)
	}

	s.logger.Info("file saved", slog.String("filename", clean))

	return clean, nil
}

// Path returns the on-disk path for a stored filename. The name is sanitized
// again so a crafted request cannot escape the upload directory.
func (s *Store) Path(name string) (string, error) {
	clean := SanitizeFilename(name)
	if clean == "" {
		return "", fmt.Errorf("invalid filename %q", name)
	}

	return filepath.Join(s.dir, clean), nil
}

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/tilde/internal/apperr"
	"github.com/starford/tilde/internal/checksum"
	"github.com/starford/tilde/internal/lines"
	"github.com/starford/tilde/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root   string // absolute path to notes directory
	logger *slog.Logger
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string, logger *slog.Logger) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FS{root: abs, logger: logger}, nil
}

// Root returns the absolute notes directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a name against the notes root and rejects any result
// that escapes it (directory traversal).
func (f *FS) safePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: %w: empty", apperr.ErrInvalidName)
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: %w: absolute paths not allowed: %s", apperr.ErrInvalidName, name)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: %w: escapes notes root: %s", apperr.ErrInvalidName, name)
	}
	return abs, nil
}

// ListDirectory returns the names of the regular files directly under the
// root, in the order the file system reports them. Directories and dot-files
// are skipped.
func (f *FS) ListDirectory() ([]string, error) {
	dir, err := os.Open(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: open dir: %w", err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("storage: read dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !isNoteEntry(e) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func isNoteEntry(e fs.DirEntry) bool {
	if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
		return false
	}
	return e.Type().IsRegular() || e.Type()&fs.ModeSymlink != 0
}

// Read returns the raw bytes of a notes file.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w: %w", name, apperr.ErrNotFound, err)
		}
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Lines reads a notes file and splits it into lines. Content that is not
// valid UTF-8 is rejected with apperr.ErrInvalidEncoding.
func (f *FS) Lines(name string) ([]string, error) {
	data, err := f.Read(name)
	if err != nil {
		return nil, err
	}
	if !lines.Valid(data) {
		return nil, fmt.Errorf("storage: read %s: %w", name, apperr.ErrInvalidEncoding)
	}
	return lines.Split(data), nil
}

// Load reads a notes file into a Note with the checksum of its raw content.
func (f *FS) Load(name string) (*models.Note, error) {
	data, err := f.Read(name)
	if err != nil {
		return nil, err
	}
	if !lines.Valid(data) {
		return nil, fmt.Errorf("storage: read %s: %w", name, apperr.ErrInvalidEncoding)
	}
	return &models.Note{
		Name:     name,
		Path:     filepath.Join(f.root, filepath.Clean(name)),
		Lines:    lines.Split(data),
		Checksum: checksum.Sum(data),
	}, nil
}

// ReadLines is the best-effort form of Lines: an unreadable note reads as
// zero lines so one bad file does not end the browsing session.
func (f *FS) ReadLines(name string) []string {
	ls, err := f.Lines(name)
	if err != nil {
		f.logger.Warn("storage: read lines failed", slog.String("name", name), slog.String("error", err.Error()))
		return []string{}
	}
	return ls
}

// ReadWhole returns the raw content of a notes file. It follows the same
// best-effort policy as ReadLines.
func (f *FS) ReadWhole(name string) string {
	data, err := f.Read(name)
	if err == nil && !lines.Valid(data) {
		err = fmt.Errorf("storage: read %s: %w", name, apperr.ErrInvalidEncoding)
	}
	if err != nil {
		f.logger.Warn("storage: read whole failed", slog.String("name", name), slog.String("error", err.Error()))
		return ""
	}
	return string(data)
}

// WriteLineAt re-reads the current lines of the file, replaces the one at
// index with text and rewrites the whole file. The index is checked against
// that fresh read; an out-of-range index leaves the file untouched.
func (f *FS) WriteLineAt(name string, index int, text string) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}
	current, err := f.Lines(name)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(current) {
		return fmt.Errorf("storage: write %s: %w: index %d, %d lines", name, apperr.ErrLineOutOfRange, index, len(current))
	}
	current[index] = text
	// A symlinked note is rewritten at its target so the link survives.
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("storage: resolve %s: %w", name, err)
	}
	if err := f.write(target, lines.Join(current)); err != nil {
		return err
	}
	f.logger.Debug("storage: line written", slog.String("name", name), slog.Int("index", index))
	return nil
}

// write atomically replaces abs with content: tmp file → fsync → rename.
// The permissions of an existing file are carried over.
func (f *FS) write(abs string, content []byte) error {
	dir := filepath.Dir(abs)
	tmp, err := os.CreateTemp(dir, ".tilde-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if info, err := os.Stat(abs); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			return fmt.Errorf("storage: chmod temp: %w", err)
		}
	}
	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

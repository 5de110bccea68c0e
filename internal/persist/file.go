package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
)

// FileBackend keeps the snapshot as a single JSON document.
// Each write replaces the whole file.
type FileBackend struct {
	fs   afero.Fs
	path string
}

// NewFileBackend returns a backend storing the snapshot at path on fsys.
// The parent directory is created on first write.
func NewFileBackend(fsys afero.Fs, path string) *FileBackend {
	return &FileBackend{fs: fsys, path: path}
}

func (b *FileBackend) Read() (scheduler.Snapshot, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return scheduler.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return scheduler.Snapshot{}, fmt.Errorf("read %s: %w", b.path, err)
	}
	return Decode(data)
}

// Write encodes s into a temporary sibling file and renames it over the
// snapshot, so readers see either the old or the new document.
func (b *FileBackend) Write(s scheduler.Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := b.fs.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := b.fs.Rename(tmp, b.path); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// pkg/dictionary/sink.go
package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NivBraz/dictionary-service/internal/models"
)

// Snapshotter supplies the entries to persist.
type Snapshotter interface {
	Snapshot() []models.Entry
}

// FileSink rewrites the whole dictionary file on every Save.
type FileSink struct {
	path string
	src  Snapshotter
	mu   sync.Mutex
}

func NewFileSink(path string, src Snapshotter) *FileSink {
	return &FileSink{path: path, src: src}
}

// Path returns the backing file.
func (s *FileSink) Path() string {
	return s.path
}

// Save snapshots the source and replaces the backing file with it. Saves
// are serialized and the snapshot is taken inside the lock, so a later save
// never writes an older state than an earlier one. The file is written to a
// temporary sibling and renamed into place.
func (s *FileSink) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.src.Snapshot()

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("error setting dictionary file mode: %w", err)
	}

	if err := Format(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing dictionary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing dictionary file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing dictionary file: %w", err)
	}
	return nil
}

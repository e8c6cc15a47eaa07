package snapshot

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/feedlab/snsbox/internal/domain"
)

// Persister reads and writes the full snapshot document.
type Persister interface {
	// Load returns the stored snapshot. The error wraps fs.ErrNotExist
	// when nothing has been persisted yet.
	Load() (*domain.Snapshot, error)

	// Save replaces the stored snapshot. The write is atomic: a
	// concurrent reader never observes a half-written document.
	Save(*domain.Snapshot) error
}

// FilePersister stores the snapshot as indented JSON at a fixed path.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister backed by the file at path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load reads and decodes the snapshot file.
func (p *FilePersister) Load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes to a temp file in the same directory and renames it into
// place, so the file at path always holds a complete document.
func (p *FilePersister) Save(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// MemoryPersister keeps the snapshot in memory. Used by tests and the
// in-memory server mode so nothing touches the real filesystem.
type MemoryPersister struct {
	mu   sync.Mutex
	snap *domain.Snapshot
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns the last saved snapshot, or fs.ErrNotExist before the
// first Save.
func (p *MemoryPersister) Load() (*domain.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return nil, fmt.Errorf("load snapshot: %w", fs.ErrNotExist)
	}
	return p.snap, nil
}

// Save retains the snapshot in memory.
func (p *MemoryPersister) Save(snap *domain.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
	return nil
}

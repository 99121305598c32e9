// internal/store/files.go
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/versehub/versehub/internal/domain"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

// FileStore tracks uploaded file metadata in process memory. The file
// bytes live on disk under the configured upload directory; on restart the
// metadata is gone and any leftover files are orphaned, matching the rest
// of the system's memory-only lifecycle.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]*domain.StoredFile
}

func NewFileStore() *FileStore {
	return &FileStore{
		files: make(map[string]*domain.StoredFile),
	}
}

// Add records an uploaded file.
func (s *FileStore) Add(file *domain.StoredFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.ID] = copyFile(file)
}

// Get returns file metadata by ID.
func (s *FileStore) Get(id string) (*domain.StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	return copyFile(file), nil
}

// ListByOwner returns the files uploaded by a user, newest first.
func (s *FileStore) ListByOwner(owner string) []*domain.StoredFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.StoredFile, 0)
	for _, f := range s.files {
		if f.Owner == owner {
			out = append(out, copyFile(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

// Remove deletes file metadata by ID.
func (s *FileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return ErrFileNotFound
	}
	delete(s.files, id)
	return nil
}

func copyFile(file *domain.StoredFile) *domain.StoredFile {
	clone := *file
	return &clone
}

package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// FileSlot keeps the slot value in a single file under the data directory.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

func NewFileSlot(dataDir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileSlot{path: filepath.Join(dataDir, name)}, nil
}

func (s *FileSlot) Get() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (s *FileSlot) Set(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(value), 0o644)
}

func (s *FileSlot) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

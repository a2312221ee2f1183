package storage

import "sync"

// MemorySlot holds the slot value in memory (dev/test use).
type MemorySlot struct {
	mu      sync.Mutex
	value   string
	present bool

	// GetErr, when set, is returned by every Get. Lets tests exercise the
	// read-failure path without a filesystem.
	GetErr error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Seed stores a value directly, bypassing Set, so tests can arrange
// pre-existing slot contents.
func (s *MemorySlot) Seed(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.present = true
}

func (s *MemorySlot) Get() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	return s.value, s.present, nil
}

func (s *MemorySlot) Set(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.present = true
	return nil
}

func (s *MemorySlot) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.present = false
	return nil
}

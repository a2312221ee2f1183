package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ticklist/internal/config"
)

// Open builds the slot named by the config. The returned closer is a no-op
// for backends without resources to release.
func Open(cfg *config.Config) (Slot, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		path := strings.TrimSpace(cfg.Storage.SQLitePath)
		if path == "" {
			path = filepath.Join(cfg.DataDir, "ticklist.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		slot, err := NewSQLiteSlot(path, "tasks")
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil

	case config.BackendFile:
		slot, err := NewFileSlot(cfg.DataDir, "tasks.json")
		if err != nil {
			return nil, nil, err
		}
		return slot, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

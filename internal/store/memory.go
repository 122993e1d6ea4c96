package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// MemoryStore is an in-memory implementation of the VersionStore interface,
// useful for testing the service layer without a real data directory.
// Backup and pinned "paths" are synthetic keys into internal maps; Restore
// still writes to the real target path so round-trip tests work against
// t.TempDir(). Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	backups map[string][]byte // backup path -> content
	pinned  map[string][]byte // pinned path -> content
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		backups: make(map[string][]byte),
		pinned:  make(map[string][]byte),
	}
}

func (m *MemoryStore) Backup(fileID string, sourcePath string, versionNumber int) (string, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", vfm.ErrSourceMissing, sourcePath)
		}
		return "", fmt.Errorf("reading source: %w", err)
	}

	key := fmt.Sprintf("mem://versions/%s/v%d%s", fileID, versionNumber, filepath.Ext(sourcePath))
	m.mu.Lock()
	m.backups[key] = data
	m.mu.Unlock()
	return key, nil
}

func (m *MemoryStore) Restore(backupPath string, targetPath string) error {
	m.mu.RLock()
	data, ok := m.backups[backupPath]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", vfm.ErrBackupMissing, backupPath)
	}
	if err := os.WriteFile(targetPath, data, 0644); err != nil {
		return fmt.Errorf("writing target: %w", err)
	}
	return nil
}

func (m *MemoryStore) Pin(backupPath string, displayName string, versionNumber int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.backups[backupPath]
	if !ok {
		return "", fmt.Errorf("%w: %s", vfm.ErrBackupMissing, backupPath)
	}

	ext := filepath.Ext(displayName)
	stem := strings.TrimSuffix(displayName, ext)
	key := fmt.Sprintf("mem://pinned/%s_v%d%s", stem, versionNumber, ext)
	m.pinned[key] = data // last pin wins
	return key, nil
}

func (m *MemoryStore) Unpin(pinnedPath string) error {
	m.mu.Lock()
	delete(m.pinned, pinnedPath)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteBackups(fileID string, pinnedPaths []string) error {
	prefix := fmt.Sprintf("mem://versions/%s/", fileID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.backups {
		if strings.HasPrefix(key, prefix) {
			delete(m.backups, key)
		}
	}
	for _, p := range pinnedPaths {
		delete(m.pinned, p)
	}
	return nil
}

// BackupCount returns the number of stored backups. Test helper.
func (m *MemoryStore) BackupCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.backups)
}

// PinnedCount returns the number of pinned copies. Test helper.
func (m *MemoryStore) PinnedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pinned)
}

// Compile-time check that MemoryStore implements vfm.VersionStore
var _ vfm.VersionStore = (*MemoryStore)(nil)

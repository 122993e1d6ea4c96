package store

import (
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/config"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// NewStoreFromConfig creates a VersionStore implementation based on the store config type.
func NewStoreFromConfig(cfg config.StoreConfig, logger vfm.Logger) (vfm.VersionStore, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("root required for filesystem store")
		}
		return NewFileSystemStore(cfg.Root, cfg.PinDir, logger)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

package database

import (
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/config"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// NewCatalogFromConfig creates a catalog based on the configuration type.
func NewCatalogFromConfig(cfg config.DatabaseConfig) (vfm.Catalog, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSQLiteCatalog(cfg.Path)
	case "memory":
		catalog, err := NewSQLiteCatalog(":memory:")
		if err != nil {
			return nil, err
		}
		if err := catalog.Migrate(); err != nil {
			catalog.Close()
			return nil, fmt.Errorf("initializing in-memory schema: %w", err)
		}
		return catalog, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

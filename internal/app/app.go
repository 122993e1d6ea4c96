package app

import (
	"fmt"
	"os"
	"time"

	"github.com/dit-jay93/VersionManager/internal/config"
	"github.com/dit-jay93/VersionManager/internal/database"
	"github.com/dit-jay93/VersionManager/internal/store"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// App is the application layer between the CLI / HTTP server and the
// service types. It constructs all dependencies from config and manages
// the catalog lifecycle on Close.
type App struct {
	Config   *config.Config
	Catalog  vfm.Catalog
	Store    vfm.VersionStore
	Registry *vfm.Registry
	Engine   *vfm.Engine
	Logger   vfm.Logger

	logFile *os.File
}

// New creates a fully wired App from the given config.
// operation identifies the command being run (e.g. "Register", "VerifyAll").
// The caller must call Close when done.
func New(cfg *config.Config, operation string) (*App, error) {
	catalog, err := database.NewCatalogFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	// File-backed catalogs are migrated in place; a fresh database gets
	// the full schema, an existing one is checked and brought forward.
	if sqlite, ok := catalog.(*database.SQLiteCatalog); ok && cfg.Database.Type == "sqlite" {
		if err := sqlite.Migrate(); err != nil {
			catalog.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		if err := sqlite.CheckMigrations(); err != nil {
			catalog.Close()
			return nil, fmt.Errorf("database schema out of date: %w", err)
		}
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	if operation != "" {
		opID = opID + "-" + operation
	}
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		catalog.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	vs, err := store.NewStoreFromConfig(cfg.Store, logger)
	if err != nil {
		catalog.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating version store: %w", err)
	}

	hasher := vfm.NewXXH3Hasher()
	registry := vfm.NewRegistry(catalog, vs, hasher, logger, vfm.RealClock{}, vfm.UUIDGenerator{})

	var engineOpts []vfm.EngineOption
	if !cfg.Verify.DedupEvents {
		engineOpts = append(engineOpts, vfm.WithoutEventDedup())
	}
	engine := vfm.NewEngine(catalog, hasher, logger, vfm.RealClock{}, vfm.UUIDGenerator{}, engineOpts...)

	return &App{
		Config:   cfg,
		Catalog:  catalog,
		Store:    vs,
		Registry: registry,
		Engine:   engine,
		Logger:   logger,
		logFile:  logFile,
	}, nil
}

// Close closes the catalog and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.Catalog.Close(); err != nil {
		firstErr = fmt.Errorf("closing catalog: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

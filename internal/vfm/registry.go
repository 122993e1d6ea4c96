package vfm

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// Registry orchestrates registration, versioning and catalog mutation. It is
// the authoritative source of TrackedFile and Version records. Construct one
// Registry at process startup and pass it by handle; there is no package
// global.
type Registry struct {
	catalog Catalog
	store   VersionStore
	hasher  Hasher
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	locks   *lockTable
}

// NewRegistry creates a Registry with the provided dependencies.
func NewRegistry(catalog Catalog, store VersionStore, hasher Hasher, logger Logger, clock Clock, idgen IDGenerator) *Registry {
	return &Registry{
		catalog: catalog,
		store:   store,
		hasher:  hasher,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		locks:   newLockTable(),
	}
}

// fileState is a point-in-time size/mtime/hash reading of a file on disk.
type fileState struct {
	size  int64
	mtime time.Time
	hash  string
}

// readFileState stats and hashes path. Returns ErrSourceMissing when the
// path does not exist.
func (r *Registry) readFileState(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileState{}, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return fileState{}, fmt.Errorf("stat %s: %w", path, err)
	}

	hash, err := r.hasher.Sum(path)
	if err != nil {
		return fileState{}, err
	}

	return fileState{size: info.Size(), mtime: info.ModTime(), hash: hash}, nil
}

// Register starts tracking the file at path and creates version 1 with the
// given commit message. displayName defaults to the filename when empty.
//
// Returns ErrSourceMissing if path does not exist and ErrAlreadyTracked if
// an active entry already references it. The file record and version 1 are
// created transactionally: a backup failure leaves no catalog rows, and a
// catalog failure removes the orphan backup.
func (r *Registry) Register(path string, commitMessage string, displayName string) (*model.TrackedFile, *model.Version, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving path: %w", err)
	}

	unlock := r.locks.Lock(absPath)
	defer unlock()

	existing, err := r.catalog.FindFileByPath(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("checking for existing file: %w", err)
	}
	if existing != nil {
		// Return the existing record so callers can redirect the user
		// instead of silently duplicating.
		return existing, nil, fmt.Errorf("%w: %s", ErrAlreadyTracked, absPath)
	}

	state, err := r.readFileState(absPath)
	if err != nil {
		return nil, nil, err
	}

	if displayName == "" {
		displayName = filepath.Base(absPath)
	}

	now := r.clock.Now()
	file := &model.TrackedFile{
		ID:           r.idgen.New(),
		DisplayName:  displayName,
		FilePath:     absPath,
		FileSize:     state.size,
		ModifiedTime: state.mtime,
		FileHash:     state.hash,
		Status:       model.StatusOK,
		CreatedAt:    now,
	}

	backupPath, err := r.store.Backup(file.ID, absPath, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("creating initial backup: %w", err)
	}

	version := &model.Version{
		ID:            r.idgen.New(),
		FileID:        file.ID,
		VersionNumber: 1,
		CommitMessage: commitMessage,
		FileSize:      state.size,
		ModifiedTime:  state.mtime,
		FileHash:      state.hash,
		CreatedAt:     now,
		BackupPath:    backupPath,
	}

	if err := r.catalog.CreateFileWithVersion(file, version); err != nil {
		// No version without a commit, and no file without a version:
		// remove the backup we just wrote.
		if derr := r.store.DeleteBackups(file.ID, nil); derr != nil {
			r.logger.Warn("cleanup after failed registration", "file_id", file.ID, "error", derr)
		}
		return nil, nil, fmt.Errorf("persisting file record: %w", err)
	}

	r.logger.Info("file registered", "file_id", file.ID, "path", absPath)
	return file, version, nil
}

// CreateVersion snapshots the tracked file's current content as the next
// version. The version number is max(existing)+1, computed under the file
// lock so concurrent commits cannot collide. The file's cached state is
// refreshed to the new snapshot and status resets to OK.
func (r *Registry) CreateVersion(fileID string, commitMessage string) (*model.Version, error) {
	unlock := r.locks.Lock(fileID)
	defer unlock()

	file, err := r.catalog.FindFileByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	state, err := r.readFileState(file.FilePath)
	if err != nil {
		return nil, err
	}

	number, err := r.catalog.NextVersionNumber(fileID)
	if err != nil {
		return nil, fmt.Errorf("computing next version number: %w", err)
	}

	backupPath, err := r.store.Backup(fileID, file.FilePath, number)
	if err != nil {
		return nil, fmt.Errorf("backing up version %d: %w", number, err)
	}

	version := &model.Version{
		ID:            r.idgen.New(),
		FileID:        fileID,
		VersionNumber: number,
		CommitMessage: commitMessage,
		FileSize:      state.size,
		ModifiedTime:  state.mtime,
		FileHash:      state.hash,
		CreatedAt:     r.clock.Now(),
		BackupPath:    backupPath,
	}

	if err := r.catalog.AddVersion(version); err != nil {
		if rerr := os.Remove(backupPath); rerr != nil && !os.IsNotExist(rerr) {
			r.logger.Warn("cleanup after failed version", "path", backupPath, "error", rerr)
		}
		return nil, fmt.Errorf("recording version: %w", err)
	}

	r.logger.Info("version created", "file_id", fileID, "version", number)
	return version, nil
}

// GetFile returns a tracked file by id.
func (r *Registry) GetFile(fileID string) (*model.TrackedFile, error) {
	file, err := r.catalog.FindFileByID(fileID)
	if err != nil {
		return nil, fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}
	return file, nil
}

// ListFiles returns all tracked files.
func (r *Registry) ListFiles(includeArchived bool) ([]*model.TrackedFile, error) {
	return r.catalog.ListFiles(includeArchived)
}

// ListVersions returns a file's versions ordered by number.
func (r *Registry) ListVersions(fileID string) ([]*model.Version, error) {
	if _, err := r.GetFile(fileID); err != nil {
		return nil, err
	}
	return r.catalog.ListVersions(fileID)
}

// GetVersion returns one version of a file by number.
func (r *Registry) GetVersion(fileID string, number int) (*model.Version, error) {
	v, err := r.catalog.FindVersion(fileID, number)
	if err != nil {
		return nil, fmt.Errorf("finding version: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: file %s version %d", ErrNotFound, fileID, number)
	}
	return v, nil
}

// ListEvents returns a file's event timeline, newest first.
func (r *Registry) ListEvents(fileID string, limit int) ([]*model.Event, error) {
	if _, err := r.GetFile(fileID); err != nil {
		return nil, err
	}
	return r.catalog.ListEvents(fileID, limit)
}

// appendEvent records a lifecycle event. Event failures never fail the
// operation that triggered them; they are logged instead.
func (r *Registry) appendEvent(fileID string, kind model.EventKind, description string) {
	e := &model.Event{
		ID:          r.idgen.New(),
		FileID:      fileID,
		Kind:        kind,
		Description: description,
		CreatedAt:   r.clock.Now(),
	}
	if err := r.catalog.AppendEvent(e); err != nil {
		r.logger.Warn("appending event", "file_id", fileID, "kind", string(kind), "error", err)
	}
}

// SetFavorite toggles the favorite flag. Catalog-only.
func (r *Registry) SetFavorite(fileID string, favorite bool) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}
	return r.catalog.SetFavorite(fileID, favorite)
}

// SetArchived toggles the archived flag. Catalog-only.
func (r *Registry) SetArchived(fileID string, archived bool) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}
	return r.catalog.SetArchived(fileID, archived)
}

// Rename updates the display name. The filesystem name is untouched.
func (r *Registry) Rename(fileID string, displayName string) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}
	return r.catalog.UpdateDisplayName(fileID, displayName)
}

// Delete stops tracking a file: all backup files and pinned copies are
// removed from disk, and events, versions and the file row are deleted in
// one transaction. Irreversible.
func (r *Registry) Delete(fileID string) error {
	unlock := r.locks.Lock(fileID)
	defer unlock()

	file, err := r.catalog.FindFileByID(fileID)
	if err != nil {
		return fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	pinned, err := r.catalog.ListPinnedVersions(fileID)
	if err != nil {
		return fmt.Errorf("listing pinned versions: %w", err)
	}
	pinnedPaths := make([]string, 0, len(pinned))
	for _, v := range pinned {
		if v.PinnedPath != "" {
			pinnedPaths = append(pinnedPaths, v.PinnedPath)
		}
	}

	if err := r.store.DeleteBackups(fileID, pinnedPaths); err != nil {
		return fmt.Errorf("deleting backups: %w", err)
	}

	if err := r.catalog.DeleteFile(fileID); err != nil {
		return fmt.Errorf("deleting catalog records: %w", err)
	}

	r.logger.Info("file deleted", "file_id", fileID, "path", file.FilePath)
	return nil
}

// SetMetadata stores typed media metadata for a file.
func (r *Registry) SetMetadata(fileID string, meta model.FileMetadata) error {
	if _, err := r.GetFile(fileID); err != nil {
		return err
	}
	return r.catalog.SetMetadata(fileID, meta)
}

// GetMetadata returns stored metadata, or nil when none exists.
func (r *Registry) GetMetadata(fileID string) (*model.FileMetadata, error) {
	if _, err := r.GetFile(fileID); err != nil {
		return nil, err
	}
	return r.catalog.GetMetadata(fileID)
}

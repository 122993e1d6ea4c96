package vfm

import (
	"errors"
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// RestoreVersion overwrites the live tracked file in place with the content
// of the given version's backup. The original path is always the target; a
// restore never writes a side-by-side copy, never creates a new version and
// never bumps the version counter.
//
// On success the file's cached hash is set to the restored version's hash,
// status resets to OK, and a RESTORE event is appended.
//
// ErrRestoreIncomplete means the live file was removed but the backup
// content could not be put in its place; callers must surface this to the
// user, never swallow it.
func (r *Registry) RestoreVersion(fileID string, versionNumber int) error {
	unlock := r.locks.Lock(fileID)
	defer unlock()

	file, err := r.catalog.FindFileByID(fileID)
	if err != nil {
		return fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	version, err := r.catalog.FindVersion(fileID, versionNumber)
	if err != nil {
		return fmt.Errorf("finding version: %w", err)
	}
	if version == nil {
		return fmt.Errorf("%w: file %s version %d", ErrNotFound, fileID, versionNumber)
	}

	if err := r.store.Restore(version.BackupPath, file.FilePath); err != nil {
		if errors.Is(err, ErrRestoreIncomplete) {
			// The live file is gone. Record reality so verification
			// agrees with the disk until the user intervenes.
			if serr := r.catalog.UpdateFileStatus(fileID, model.StatusMissing); serr != nil {
				r.logger.Error("marking file missing after failed restore", "file_id", fileID, "error", serr)
			}
		}
		return fmt.Errorf("restoring version %d: %w", versionNumber, err)
	}

	state, err := r.readFileState(file.FilePath)
	if err != nil {
		return fmt.Errorf("reading restored file: %w", err)
	}

	if err := r.catalog.UpdateFileState(fileID, state.size, state.mtime, version.FileHash, model.StatusOK); err != nil {
		return fmt.Errorf("updating file state: %w", err)
	}

	r.appendEvent(fileID, model.EventRestore, fmt.Sprintf("Restored to version %d", versionNumber))
	r.logger.Info("version restored", "file_id", fileID, "version", versionNumber)
	return nil
}

package vfm

import (
	"fmt"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// PinState reports the outcome of a pin toggle.
type PinState struct {
	Pinned     bool   `json:"pinned"`
	PinnedPath string `json:"pinned_path,omitempty"` // Empty when Pinned is false
}

// TogglePin flips a version's pin state. Pinning copies the backup into the
// pinned-copy directory and records the path; unpinning deletes the copy.
// Both directions are idempotent at the storage level: pin;pin leaves one
// pinned copy, pin;unpin leaves zero. A PIN or UNPIN event is appended.
func (r *Registry) TogglePin(fileID string, versionNumber int) (PinState, error) {
	unlock := r.locks.Lock(fileID)
	defer unlock()

	file, err := r.catalog.FindFileByID(fileID)
	if err != nil {
		return PinState{}, fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return PinState{}, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	version, err := r.catalog.FindVersion(fileID, versionNumber)
	if err != nil {
		return PinState{}, fmt.Errorf("finding version: %w", err)
	}
	if version == nil {
		return PinState{}, fmt.Errorf("%w: file %s version %d", ErrNotFound, fileID, versionNumber)
	}

	if version.IsPinned {
		if err := r.store.Unpin(version.PinnedPath); err != nil {
			return PinState{}, fmt.Errorf("removing pinned copy: %w", err)
		}
		if err := r.catalog.SetVersionPinned(version.ID, false, ""); err != nil {
			return PinState{}, fmt.Errorf("updating pin state: %w", err)
		}
		r.appendEvent(fileID, model.EventUnpin, fmt.Sprintf("Unpinned version %d", versionNumber))
		r.logger.Info("version unpinned", "file_id", fileID, "version", versionNumber)
		return PinState{Pinned: false}, nil
	}

	pinnedPath, err := r.store.Pin(version.BackupPath, file.DisplayName, versionNumber)
	if err != nil {
		return PinState{}, fmt.Errorf("pinning version %d: %w", versionNumber, err)
	}
	if err := r.catalog.SetVersionPinned(version.ID, true, pinnedPath); err != nil {
		return PinState{}, fmt.Errorf("updating pin state: %w", err)
	}
	r.appendEvent(fileID, model.EventPin, fmt.Sprintf("Pinned version %d", versionNumber))
	r.logger.Info("version pinned", "file_id", fileID, "version", versionNumber, "path", pinnedPath)
	return PinState{Pinned: true, PinnedPath: pinnedPath}, nil
}

// ListPinnedVersions returns pinned versions, optionally scoped to one file
// (empty fileID selects all).
func (r *Registry) ListPinnedVersions(fileID string) ([]*model.Version, error) {
	return r.catalog.ListPinnedVersions(fileID)
}

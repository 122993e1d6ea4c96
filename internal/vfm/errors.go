package vfm

import "errors"

// Sentinel errors returned by the service layer. Callers match with
// errors.Is; additional context is attached via fmt.Errorf("...: %w", err).
var (
	// ErrNotFound indicates an unknown file id, version number, tag,
	// or project.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyTracked indicates an active catalog entry already
	// references the path being registered.
	ErrAlreadyTracked = errors.New("file already tracked")

	// ErrSourceMissing indicates the tracked file vanished from disk at
	// the moment an operation needed to read it.
	ErrSourceMissing = errors.New("source file missing")

	// ErrBackupMissing indicates the catalog references a backup that is
	// no longer on disk, usually external interference with the storage
	// directory.
	ErrBackupMissing = errors.New("backup file missing")

	// ErrRestoreIncomplete indicates a restore removed the live file but
	// failed to put the backup content in its place. This is the highest
	// severity failure mode and must always reach the caller.
	ErrRestoreIncomplete = errors.New("restore incomplete: original file removed")
)

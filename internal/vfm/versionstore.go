package vfm

// VersionStore owns the physical backup lifecycle: immutable per-version
// copies and durable pinned copies, independent of catalog semantics.
//
// On-disk layout produced and consumed by implementations:
//
//	<data-root>/versions/<fileID>/v<N>.<ext>
//	<data-root>/pinned/<displayName>_v<N>.<ext>
//
// All writes are atomic: content lands under the final name fully written or
// not at all (temp file then rename). Backup files are never mutated after
// creation.
type VersionStore interface {
	// Backup copies the current content of sourcePath into the per-file
	// backup directory under a name derived from versionNumber and the
	// source extension. Returns ErrSourceMissing if the source vanished
	// between check and copy.
	Backup(fileID string, sourcePath string, versionNumber int) (string, error)

	// Restore replaces targetPath's content with the backup's content.
	// Returns ErrBackupMissing if the backup no longer exists, and
	// ErrRestoreIncomplete if the target was removed but the backup
	// content could not be put in its place.
	Restore(backupPath string, targetPath string) error

	// Pin copies backup content into the pinned-copy directory, named
	// after displayName and versionNumber. A prior file at that exact
	// name is removed first: last pin wins. Returns the pinned path.
	Pin(backupPath string, displayName string, versionNumber int) (string, error)

	// Unpin deletes the pinned copy. A missing file is not an error.
	Unpin(pinnedPath string) error

	// DeleteBackups removes the entire per-file backup subtree plus the
	// given pinned copies. Best-effort: per-path failures are logged by
	// the implementation, not returned, so a larger cleanup batch can
	// proceed.
	DeleteBackups(fileID string, pinnedPaths []string) error
}

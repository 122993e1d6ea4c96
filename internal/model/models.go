package model

import "time"

// FileStatus describes the relationship between a tracked file on disk and
// the content hash recorded for it in the catalog.
type FileStatus string

const (
	StatusOK       FileStatus = "OK"       // live content matches the recorded hash
	StatusModified FileStatus = "MODIFIED" // live content differs from the recorded hash
	StatusMissing  FileStatus = "MISSING"  // the tracked path no longer exists
)

// Valid reports whether s is one of the three known statuses.
func (s FileStatus) Valid() bool {
	switch s {
	case StatusOK, StatusModified, StatusMissing:
		return true
	}
	return false
}

// EventKind identifies a lifecycle event on a tracked file.
// Verify-OK transitions are deliberately never recorded: only drift
// and explicit user actions are newsworthy.
type EventKind string

const (
	EventRestore        EventKind = "RESTORE"
	EventPin            EventKind = "PIN"
	EventUnpin          EventKind = "UNPIN"
	EventDelete         EventKind = "DELETE"
	EventVerifyModified EventKind = "VERIFY_MODIFIED"
	EventVerifyMissing  EventKind = "VERIFY_MISSING"
	EventRelink         EventKind = "RELINK"
)

// TrackedFile is a catalog entry for a file under version tracking.
// At most one active TrackedFile may reference a given path.
type TrackedFile struct {
	ID           string     `json:"id"`           // UUID
	DisplayName  string     `json:"display_name"` // User-editable label, independent of the filesystem name
	FilePath     string     `json:"file_path"`    // Absolute path on disk
	FileSize     int64      `json:"file_size"`    // Size at last snapshot/verify
	ModifiedTime time.Time  `json:"modified_time"`
	FileHash     string     `json:"file_hash"` // Content hash of the current version
	Status       FileStatus `json:"status"`
	IsFavorite   bool       `json:"is_favorite"`
	IsArchived   bool       `json:"is_archived"`
	CreatedAt    time.Time  `json:"created_at"`
	ProjectID    string     `json:"project_id,omitempty"` // Empty when unassigned
}

// Version is an immutable content snapshot of a tracked file.
// Version numbers form a gapless increasing sequence starting at 1,
// scoped to the owning file; numbers are never reused or reordered.
type Version struct {
	ID            string    `json:"id"` // UUID
	FileID        string    `json:"file_id"`
	VersionNumber int       `json:"version_number"`
	CommitMessage string    `json:"commit_message"` // Mandatory, immutable once set
	FileSize      int64     `json:"file_size"`
	ModifiedTime  time.Time `json:"modified_time"`
	FileHash      string    `json:"file_hash"`
	CreatedAt     time.Time `json:"created_at"`
	BackupPath    string    `json:"backup_path"` // Back-reference into the version store, never a shared-write target
	IsPinned      bool      `json:"is_pinned"`
	PinnedPath    string    `json:"pinned_path,omitempty"` // Empty when not pinned
}

// Event is an append-only record in a file's history timeline.
type Event struct {
	ID          string    `json:"id"` // UUID
	FileID      string    `json:"file_id"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tag is a lowercase label attachable to many files.
type Tag struct {
	ID        string    `json:"id"`   // UUID
	Name      string    `json:"name"` // Stored lowercase, without the leading '#'
	CreatedAt time.Time `json:"created_at"`
}

// Project groups tracked files. Thin: grouping only, no lifecycle semantics.
type Project struct {
	ID          string    `json:"id"` // UUID
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"` // Hex color for UI consumers
	CreatedAt   time.Time `json:"created_at"`
}

package vfm

import (
	"time"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// Catalog is the durable store for tracked files, versions, events, tags and
// projects. Find methods return nil (not an error) when a record is absent;
// the service layer translates nil into ErrNotFound. Multi-row mutations are
// implemented inside a single transaction.
type Catalog interface {
	// File operations

	// FindFileByID returns a tracked file by id.
	FindFileByID(id string) (*model.TrackedFile, error)

	// FindFileByPath returns the active tracked file referencing path.
	FindFileByPath(path string) (*model.TrackedFile, error)

	// ListFiles returns all tracked files, oldest first.
	ListFiles(includeArchived bool) ([]*model.TrackedFile, error)

	// ListFilesByProject returns files assigned to a project.
	// An empty projectID selects unassigned files.
	ListFilesByProject(projectID string, includeArchived bool) ([]*model.TrackedFile, error)

	// ListFilesByTag returns files carrying the given tag.
	ListFilesByTag(tagID string) ([]*model.TrackedFile, error)

	// CreateFileWithVersion inserts a file record and its initial version
	// in one transaction. Registration never persists a file without a
	// version: if either insert fails, neither row survives.
	CreateFileWithVersion(file *model.TrackedFile, version *model.Version) error

	// UpdateFileStatus sets only the status column.
	UpdateFileStatus(fileID string, status model.FileStatus) error

	// UpdateFileState refreshes the cached size/mtime/hash and status.
	UpdateFileState(fileID string, size int64, mtime time.Time, hash string, status model.FileStatus) error

	// UpdateFileLocation points the record at a new path (relink).
	UpdateFileLocation(fileID string, path string, size int64, mtime time.Time, hash string, status model.FileStatus) error

	// UpdateDisplayName renames the catalog entry. Filesystem untouched.
	UpdateDisplayName(fileID string, name string) error

	// SetFavorite and SetArchived toggle catalog-only flags.
	SetFavorite(fileID string, favorite bool) error
	SetArchived(fileID string, archived bool) error

	// SetFileProject assigns the file to a project; empty id unassigns.
	SetFileProject(fileID string, projectID string) error

	// DeleteFile removes the file and everything owned by it in one
	// transaction, in explicit order: events, tag links, metadata,
	// versions, then the file row.
	DeleteFile(fileID string) error

	// Version operations

	// AddVersion inserts a version row and refreshes the owning file's
	// cached state (size/mtime/hash, status OK) in one transaction.
	AddVersion(v *model.Version) error

	// ListVersions returns a file's versions ordered by version number.
	ListVersions(fileID string) ([]*model.Version, error)

	// FindVersion returns a specific version by number.
	FindVersion(fileID string, number int) (*model.Version, error)

	// NextVersionNumber returns max(existing numbers)+1, or 1 for a file
	// with no versions. Callers serialize per file; numbers are gapless
	// and never reused.
	NextVersionNumber(fileID string) (int, error)

	// SetVersionPinned updates a version's pin state and pinned-copy path.
	SetVersionPinned(versionID string, pinned bool, pinnedPath string) error

	// ListPinnedVersions returns pinned versions, optionally scoped to a
	// file (empty fileID selects all).
	ListPinnedVersions(fileID string) ([]*model.Version, error)

	// Event operations

	// AppendEvent records a lifecycle event. Events are never updated or
	// deleted individually; they cascade with file deletion.
	AppendEvent(e *model.Event) error

	// ListEvents returns a file's events, newest first. limit <= 0 means
	// no limit.
	ListEvents(fileID string, limit int) ([]*model.Event, error)

	// Tag operations

	// GetOrCreateTag normalizes name (lowercase, '#' stripped) and
	// returns the existing or newly created tag.
	GetOrCreateTag(name string) (*model.Tag, error)

	// AttachTag links a tag to a file; attaching twice is a no-op.
	AttachTag(tagID string, fileID string) error

	// DetachTag removes the link between a tag and a file.
	DetachTag(tagID string, fileID string) error

	// ListFileTags returns tags attached to a file, by name.
	ListFileTags(fileID string) ([]*model.Tag, error)

	// ListTags returns all tags, by name.
	ListTags() ([]*model.Tag, error)

	// DeleteUnusedTags removes tags with no remaining links and returns
	// how many were deleted.
	DeleteUnusedTags() (int, error)

	// Project operations

	CreateProject(p *model.Project) error
	FindProject(id string) (*model.Project, error)
	ListProjects() ([]*model.Project, error)
	UpdateProject(p *model.Project) error

	// DeleteProject removes the project and unassigns its files.
	DeleteProject(id string) error

	// ProjectFileCount returns the number of files assigned to a project.
	ProjectFileCount(id string) (int, error)

	// Metadata operations

	// SetMetadata stores the typed media metadata for a file.
	SetMetadata(fileID string, meta model.FileMetadata) error

	// GetMetadata returns stored metadata, or nil when none exists.
	GetMetadata(fileID string) (*model.FileMetadata, error)

	// Close closes the underlying store.
	Close() error
}

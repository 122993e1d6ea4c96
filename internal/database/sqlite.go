package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dit-jay93/VersionManager/internal/database/migrations"
	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/vfm"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteCatalog implements the vfm.Catalog interface using SQLite.
type SQLiteCatalog struct {
	db   *sql.DB
	path string
}

// NewSQLiteCatalog opens a SQLite catalog at path.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteCatalog{db: db, path: path}, nil
}

// NewSQLiteCatalogFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteCatalogFromDB(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite connection with appropriate PRAGMAs.
// Exported for use in tools and tests that need a properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

const fileColumns = `id, display_name, file_path, file_size, modified_time, file_hash,
	status, is_favorite, is_archived, created_at, project_id`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*model.TrackedFile, error) {
	var f model.TrackedFile
	var status string
	var projectID sql.NullString
	err := row.Scan(&f.ID, &f.DisplayName, &f.FilePath, &f.FileSize, &f.ModifiedTime,
		&f.FileHash, &status, &f.IsFavorite, &f.IsArchived, &f.CreatedAt, &projectID)
	if err != nil {
		return nil, err
	}
	f.Status = model.FileStatus(status)
	f.ProjectID = projectID.String
	return &f, nil
}

// File operations

func (s *SQLiteCatalog) FindFileByID(id string) (*model.TrackedFile, error) {
	row := s.db.QueryRow(`SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("finding file by id: %w", err)
	}
	return f, nil
}

func (s *SQLiteCatalog) FindFileByPath(path string) (*model.TrackedFile, error) {
	row := s.db.QueryRow(`SELECT `+fileColumns+` FROM files WHERE file_path = ?`, path)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("finding file by path: %w", err)
	}
	return f, nil
}

func (s *SQLiteCatalog) queryFiles(query string, args ...any) ([]*model.TrackedFile, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*model.TrackedFile
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *SQLiteCatalog) ListFiles(includeArchived bool) ([]*model.TrackedFile, error) {
	query := `SELECT ` + fileColumns + ` FROM files`
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY created_at, id`

	files, err := s.queryFiles(query)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

func (s *SQLiteCatalog) ListFilesByProject(projectID string, includeArchived bool) ([]*model.TrackedFile, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE `
	args := []any{}
	if projectID == "" {
		query += `project_id IS NULL`
	} else {
		query += `project_id = ?`
		args = append(args, projectID)
	}
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY created_at, id`

	files, err := s.queryFiles(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing files by project: %w", err)
	}
	return files, nil
}

func (s *SQLiteCatalog) ListFilesByTag(tagID string) ([]*model.TrackedFile, error) {
	query := `SELECT f.id, f.display_name, f.file_path, f.file_size, f.modified_time,
		f.file_hash, f.status, f.is_favorite, f.is_archived, f.created_at, f.project_id
		FROM files f
		JOIN tag_links tl ON tl.file_id = f.id
		WHERE tl.tag_id = ?
		ORDER BY f.created_at, f.id`

	files, err := s.queryFiles(query, tagID)
	if err != nil {
		return nil, fmt.Errorf("listing files by tag: %w", err)
	}
	return files, nil
}

func (s *SQLiteCatalog) CreateFileWithVersion(file *model.TrackedFile, version *model.Version) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO files
		(id, display_name, file_path, file_size, modified_time, file_hash, status,
		 is_favorite, is_archived, created_at, project_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		file.ID, file.DisplayName, file.FilePath, file.FileSize, file.ModifiedTime,
		file.FileHash, string(file.Status), file.IsFavorite, file.IsArchived,
		file.CreatedAt, nullable(file.ProjectID))
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}

	if err := insertVersion(tx, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) UpdateFileStatus(fileID string, status model.FileStatus) error {
	if err := s.execOne(`UPDATE files SET status = ? WHERE id = ?`, string(status), fileID); err != nil {
		return fmt.Errorf("updating file status: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) UpdateFileState(fileID string, size int64, mtime time.Time, hash string, status model.FileStatus) error {
	err := s.execOne(`UPDATE files SET file_size = ?, modified_time = ?, file_hash = ?, status = ? WHERE id = ?`,
		size, mtime, hash, string(status), fileID)
	if err != nil {
		return fmt.Errorf("updating file state: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) UpdateFileLocation(fileID string, path string, size int64, mtime time.Time, hash string, status model.FileStatus) error {
	err := s.execOne(`UPDATE files SET file_path = ?, file_size = ?, modified_time = ?, file_hash = ?, status = ? WHERE id = ?`,
		path, size, mtime, hash, string(status), fileID)
	if err != nil {
		return fmt.Errorf("updating file location: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) UpdateDisplayName(fileID string, name string) error {
	if err := s.execOne(`UPDATE files SET display_name = ? WHERE id = ?`, name, fileID); err != nil {
		return fmt.Errorf("updating display name: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) SetFavorite(fileID string, favorite bool) error {
	if err := s.execOne(`UPDATE files SET is_favorite = ? WHERE id = ?`, favorite, fileID); err != nil {
		return fmt.Errorf("setting favorite: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) SetArchived(fileID string, archived bool) error {
	if err := s.execOne(`UPDATE files SET is_archived = ? WHERE id = ?`, archived, fileID); err != nil {
		return fmt.Errorf("setting archived: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) SetFileProject(fileID string, projectID string) error {
	if err := s.execOne(`UPDATE files SET project_id = ? WHERE id = ?`, nullable(projectID), fileID); err != nil {
		return fmt.Errorf("setting file project: %w", err)
	}
	return nil
}

// DeleteFile removes everything owned by a file in one transaction, in
// explicit order: events, tag links, metadata, versions, then the file row.
func (s *SQLiteCatalog) DeleteFile(fileID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM events WHERE file_id = ?`,
		`DELETE FROM tag_links WHERE file_id = ?`,
		`DELETE FROM metadata WHERE file_id = ?`,
		`DELETE FROM versions WHERE file_id = ?`,
		`DELETE FROM files WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, fileID); err != nil {
			return fmt.Errorf("deleting file records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Version operations

const versionColumns = `id, file_id, version_number, commit_message, file_size,
	modified_time, file_hash, created_at, backup_path, is_pinned, pinned_path`

func scanVersion(row rowScanner) (*model.Version, error) {
	var v model.Version
	var pinnedPath sql.NullString
	err := row.Scan(&v.ID, &v.FileID, &v.VersionNumber, &v.CommitMessage, &v.FileSize,
		&v.ModifiedTime, &v.FileHash, &v.CreatedAt, &v.BackupPath, &v.IsPinned, &pinnedPath)
	if err != nil {
		return nil, err
	}
	v.PinnedPath = pinnedPath.String
	return &v, nil
}

func insertVersion(tx *sql.Tx, v *model.Version) error {
	_, err := tx.Exec(`INSERT INTO versions
		(id, file_id, version_number, commit_message, file_size, modified_time,
		 file_hash, created_at, backup_path, is_pinned, pinned_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.FileID, v.VersionNumber, v.CommitMessage, v.FileSize, v.ModifiedTime,
		v.FileHash, v.CreatedAt, v.BackupPath, v.IsPinned, nullable(v.PinnedPath))
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

// AddVersion inserts a version and refreshes the owning file's cached state
// in one transaction.
func (s *SQLiteCatalog) AddVersion(v *model.Version) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertVersion(tx, v); err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE files SET file_size = ?, modified_time = ?, file_hash = ?, status = ? WHERE id = ?`,
		v.FileSize, v.ModifiedTime, v.FileHash, string(model.StatusOK), v.FileID)
	if err != nil {
		return fmt.Errorf("refreshing file state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) ListVersions(fileID string) ([]*model.Version, error) {
	rows, err := s.db.Query(`SELECT `+versionColumns+` FROM versions WHERE file_id = ? ORDER BY version_number`, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	var versions []*model.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *SQLiteCatalog) FindVersion(fileID string, number int) (*model.Version, error) {
	row := s.db.QueryRow(`SELECT `+versionColumns+` FROM versions WHERE file_id = ? AND version_number = ?`,
		fileID, number)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("finding version: %w", err)
	}
	return v, nil
}

func (s *SQLiteCatalog) NextVersionNumber(fileID string) (int, error) {
	var max sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(version_number) FROM versions WHERE file_id = ?`, fileID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("computing next version number: %w", err)
	}
	return int(max.Int64) + 1, nil
}

func (s *SQLiteCatalog) SetVersionPinned(versionID string, pinned bool, pinnedPath string) error {
	err := s.execOne(`UPDATE versions SET is_pinned = ?, pinned_path = ? WHERE id = ?`,
		pinned, nullable(pinnedPath), versionID)
	if err != nil {
		return fmt.Errorf("setting pin state: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) ListPinnedVersions(fileID string) ([]*model.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions WHERE is_pinned = TRUE`
	args := []any{}
	if fileID != "" {
		query += ` AND file_id = ?`
		args = append(args, fileID)
	}
	query += ` ORDER BY file_id, version_number`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pinned versions: %w", err)
	}
	defer rows.Close()

	var versions []*model.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Event operations

func (s *SQLiteCatalog) AppendEvent(e *model.Event) error {
	_, err := s.db.Exec(`INSERT INTO events (id, file_id, event_kind, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.FileID, string(e.Kind), e.Description, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) ListEvents(fileID string, limit int) ([]*model.Event, error) {
	query := `SELECT id, file_id, event_kind, description, created_at
		FROM events WHERE file_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{fileID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		var e model.Event
		var kind string
		if err := rows.Scan(&e.ID, &e.FileID, &kind, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Kind = model.EventKind(kind)
		events = append(events, &e)
	}
	return events, rows.Err()
}

// Tag operations

// NormalizeTagName lowercases a tag name and strips a leading '#'.
func NormalizeTagName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "#")
	return strings.ToLower(name)
}

func (s *SQLiteCatalog) GetOrCreateTag(name string) (*model.Tag, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, fmt.Errorf("tag name is empty")
	}

	var tag model.Tag
	err := s.db.QueryRow(`SELECT id, name, created_at FROM tags WHERE name = ?`, normalized).
		Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("finding tag: %w", err)
	}

	tag = model.Tag{ID: uuid.New().String(), Name: normalized, CreatedAt: time.Now()}
	_, err = s.db.Exec(`INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
		tag.ID, tag.Name, tag.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	return &tag, nil
}

func (s *SQLiteCatalog) AttachTag(tagID string, fileID string) error {
	// UNIQUE(tag_id, file_id) makes repeated attach a no-op.
	_, err := s.db.Exec(`INSERT OR IGNORE INTO tag_links (id, tag_id, file_id, created_at)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), tagID, fileID, time.Now())
	if err != nil {
		return fmt.Errorf("attaching tag: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) DetachTag(tagID string, fileID string) error {
	_, err := s.db.Exec(`DELETE FROM tag_links WHERE tag_id = ? AND file_id = ?`, tagID, fileID)
	if err != nil {
		return fmt.Errorf("detaching tag: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) queryTags(query string, args ...any) ([]*model.Tag, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

func (s *SQLiteCatalog) ListFileTags(fileID string) ([]*model.Tag, error) {
	tags, err := s.queryTags(`SELECT t.id, t.name, t.created_at FROM tags t
		JOIN tag_links tl ON tl.tag_id = t.id
		WHERE tl.file_id = ? ORDER BY t.name`, fileID)
	if err != nil {
		return nil, fmt.Errorf("listing file tags: %w", err)
	}
	return tags, nil
}

func (s *SQLiteCatalog) ListTags() ([]*model.Tag, error) {
	tags, err := s.queryTags(`SELECT id, name, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

func (s *SQLiteCatalog) DeleteUnusedTags() (int, error) {
	res, err := s.db.Exec(`DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM tag_links)`)
	if err != nil {
		return 0, fmt.Errorf("deleting unused tags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted tags: %w", err)
	}
	return int(n), nil
}

// Project operations

func (s *SQLiteCatalog) CreateProject(p *model.Project) error {
	_, err := s.db.Exec(`INSERT INTO projects (id, name, description, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Color, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) FindProject(id string) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRow(`SELECT id, name, description, color, created_at FROM projects WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("finding project: %w", err)
	}
	return &p, nil
}

func (s *SQLiteCatalog) ListProjects() ([]*model.Project, error) {
	rows, err := s.db.Query(`SELECT id, name, description, color, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (s *SQLiteCatalog) UpdateProject(p *model.Project) error {
	err := s.execOne(`UPDATE projects SET name = ?, description = ?, color = ? WHERE id = ?`,
		p.Name, p.Description, p.Color, p.ID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// DeleteProject removes the project and unassigns its files in one
// transaction. The files themselves are untouched.
func (s *SQLiteCatalog) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE files SET project_id = NULL WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("unassigning project files: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) ProjectFileCount(id string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM files WHERE project_id = ?`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting project files: %w", err)
	}
	return count, nil
}

// Metadata operations

func (s *SQLiteCatalog) SetMetadata(fileID string, meta model.FileMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	now := time.Now()
	_, err = s.db.Exec(`INSERT INTO metadata (file_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		fileID, string(data), now, now)
	if err != nil {
		return fmt.Errorf("storing metadata: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) GetMetadata(fileID string) (*model.FileMetadata, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM metadata WHERE file_id = ?`, fileID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No metadata stored
	}
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	var meta model.FileMetadata
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return &meta, nil
}

// execOne runs an UPDATE expected to touch exactly one row and reports
// unknown ids as errors instead of silent no-ops.
func (s *SQLiteCatalog) execOne(query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: no row matched", vfm.ErrNotFound)
	}
	return nil
}

// nullable converts an empty string to NULL for optional columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteCatalog) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteCatalog) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate brings the database schema to the latest version.
func (s *SQLiteCatalog) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteCatalog) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteCatalog implements vfm.Catalog interface
var _ vfm.Catalog = (*SQLiteCatalog)(nil)

package database

// Schema is the current database schema, kept in sync with the migration
// files. Tests apply it directly to in-memory databases instead of running
// the migration machinery.
const Schema = `
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '#007AFF',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE files (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    file_path TEXT NOT NULL UNIQUE,
    file_size INTEGER NOT NULL,
    modified_time TIMESTAMP NOT NULL,
    file_hash TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'OK',
    is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
    is_archived BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    project_id TEXT REFERENCES projects(id)
);

CREATE TABLE versions (
    id TEXT PRIMARY KEY,
    file_id TEXT NOT NULL REFERENCES files(id),
    version_number INTEGER NOT NULL,
    commit_message TEXT NOT NULL,
    file_size INTEGER NOT NULL,
    modified_time TIMESTAMP NOT NULL,
    file_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    backup_path TEXT NOT NULL,
    is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
    pinned_path TEXT,
    UNIQUE (file_id, version_number)
);

CREATE INDEX idx_versions_file_id ON versions(file_id);

CREATE TABLE events (
    id TEXT PRIMARY KEY,
    file_id TEXT NOT NULL REFERENCES files(id),
    event_kind TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX idx_events_file_id ON events(file_id);

CREATE TABLE tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE tag_links (
    id TEXT PRIMARY KEY,
    tag_id TEXT NOT NULL REFERENCES tags(id),
    file_id TEXT NOT NULL REFERENCES files(id),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (tag_id, file_id)
);

CREATE INDEX idx_tag_links_file_id ON tag_links(file_id);
CREATE INDEX idx_tag_links_tag_id ON tag_links(tag_id);

CREATE TABLE metadata (
    file_id TEXT PRIMARY KEY REFERENCES files(id),
    data TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

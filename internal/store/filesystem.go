package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// FileSystemStore is the on-disk implementation of the VersionStore
// interface. Layout under the data root:
//
//	<root>/
//	  versions/
//	    <fileID>/
//	      v<N>.<ext>        (immutable backup copies)
//	  pinned/
//	    <displayName>_v<N>.<ext>
//
// Every write goes to a temp file in the destination directory and is then
// renamed into place, so a backup or pinned copy is either fully present
// under its final name or absent.
type FileSystemStore struct {
	versionsDir string
	pinnedDir   string
	logger      vfm.Logger
}

// NewFileSystemStore creates a store rooted at the given data directory.
// pinDir overrides the pinned-copy location; empty means <root>/pinned.
// The original library keeps pinned copies user-visible, so pointing pinDir
// at a synced folder is a supported setup.
func NewFileSystemStore(root string, pinDir string, logger vfm.Logger) (*FileSystemStore, error) {
	versionsDir := filepath.Join(root, "versions")
	pinnedDir := pinDir
	if pinnedDir == "" {
		pinnedDir = filepath.Join(root, "pinned")
	}

	if err := os.MkdirAll(versionsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating versions directory: %w", err)
	}
	if err := os.MkdirAll(pinnedDir, 0755); err != nil {
		return nil, fmt.Errorf("creating pinned directory: %w", err)
	}

	return &FileSystemStore{
		versionsDir: versionsDir,
		pinnedDir:   pinnedDir,
		logger:      logger,
	}, nil
}

// backupPath returns versions/<fileID>/v<N><ext>.
func (s *FileSystemStore) backupPath(fileID string, versionNumber int, ext string) string {
	return filepath.Join(s.versionsDir, fileID, fmt.Sprintf("v%d%s", versionNumber, ext))
}

// Backup copies sourcePath into the per-file backup directory.
func (s *FileSystemStore) Backup(fileID string, sourcePath string, versionNumber int) (string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			// The file vanished between the caller's check and the
			// copy. Surface, don't silently ignore.
			return "", fmt.Errorf("%w: %s", vfm.ErrSourceMissing, sourcePath)
		}
		return "", fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	destPath := s.backupPath(fileID, versionNumber, filepath.Ext(sourcePath))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	if err := writeAtomic(destPath, src); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return destPath, nil
}

// Restore replaces targetPath's content with the backup's content. The
// backup is copied to a temp file next to the target (same filesystem, so
// the final rename is atomic) and renamed over it. The live file is only
// ever removed when rename-over-existing is refused; if the removal
// succeeded but the final rename still fails, ErrRestoreIncomplete is
// returned so the caller can alert the user that the original is gone.
func (s *FileSystemStore) Restore(backupPath string, targetPath string) error {
	src, err := os.Open(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", vfm.ErrBackupMissing, backupPath)
		}
		return fmt.Errorf("opening backup: %w", err)
	}
	defer src.Close()

	dir := filepath.Dir(targetPath)
	tmpFile, err := os.CreateTemp(dir, ".restore-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, src); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("copying backup content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, targetPath); err == nil {
		return nil
	}

	// Rename over the existing target was refused. Remove and retry.
	removed := false
	if err := os.Remove(targetPath); err == nil {
		removed = true
	} else if !os.IsNotExist(err) {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing target: %w", err)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		os.Remove(tmpPath)
		if removed {
			return fmt.Errorf("%w: %s: %v", vfm.ErrRestoreIncomplete, targetPath, err)
		}
		return fmt.Errorf("moving restored content into place: %w", err)
	}
	return nil
}

// Pin copies a backup into the pinned directory. A prior pinned copy at the
// same name is removed first: last pin wins.
func (s *FileSystemStore) Pin(backupPath string, displayName string, versionNumber int) (string, error) {
	src, err := os.Open(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", vfm.ErrBackupMissing, backupPath)
		}
		return "", fmt.Errorf("opening backup: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(displayName)
	stem := strings.TrimSuffix(displayName, ext)
	pinnedPath := filepath.Join(s.pinnedDir, fmt.Sprintf("%s_v%d%s", stem, versionNumber, ext))

	if err := os.Remove(pinnedPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing previous pinned copy: %w", err)
	}
	if err := writeAtomic(pinnedPath, src); err != nil {
		return "", fmt.Errorf("writing pinned copy: %w", err)
	}
	return pinnedPath, nil
}

// Unpin deletes a pinned copy. Missing files are fine: unpin is idempotent.
func (s *FileSystemStore) Unpin(pinnedPath string) error {
	if pinnedPath == "" {
		return nil
	}
	if err := os.Remove(pinnedPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing pinned copy: %w", err)
	}
	return nil
}

// DeleteBackups removes a file's entire backup subtree and the given pinned
// copies. Best-effort: per-path failures are logged so a larger cleanup can
// proceed.
func (s *FileSystemStore) DeleteBackups(fileID string, pinnedPaths []string) error {
	dir := filepath.Join(s.versionsDir, fileID)
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Warn("removing backup directory", "file_id", fileID, "error", err)
	}
	for _, p := range pinnedPaths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("removing pinned copy", "path", p, "error", err)
		}
	}
	return nil
}

// writeAtomic streams r to destPath via a temp file in the same directory
// followed by a rename.
func writeAtomic(destPath string, r io.Reader) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements vfm.VersionStore
var _ vfm.VersionStore = (*FileSystemStore)(nil)

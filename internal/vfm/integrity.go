package vfm

import (
	"errors"
	"fmt"
)

// BackupCheck is the outcome of hashing a version's backup copy against the
// hash recorded at snapshot time. A mismatch means the backup file was
// corrupted or tampered with after creation.
type BackupCheck struct {
	Valid        bool   `json:"valid"`
	ExpectedHash string `json:"expected_hash"`
	ActualHash   string `json:"actual_hash,omitempty"`
	Error        string `json:"error,omitempty"` // Human-readable failure reason when not Valid
}

// VerifyBackup checks the integrity of one version's immutable backup copy.
// Returns ErrNotFound when the version does not exist; storage-level
// problems (backup gone, unreadable) are reported inside the BackupCheck
// rather than as errors, so batch checks can keep going.
func (e *Engine) VerifyBackup(fileID string, versionNumber int) (BackupCheck, error) {
	version, err := e.catalog.FindVersion(fileID, versionNumber)
	if err != nil {
		return BackupCheck{}, fmt.Errorf("finding version: %w", err)
	}
	if version == nil {
		return BackupCheck{}, fmt.Errorf("%w: file %s version %d", ErrNotFound, fileID, versionNumber)
	}

	actual, err := e.hasher.Sum(version.BackupPath)
	if err != nil {
		if errors.Is(err, ErrSourceMissing) {
			return BackupCheck{ExpectedHash: version.FileHash, Error: "backup file not found"}, nil
		}
		return BackupCheck{ExpectedHash: version.FileHash, Error: err.Error()}, nil
	}

	check := BackupCheck{
		Valid:        actual == version.FileHash,
		ExpectedHash: version.FileHash,
		ActualHash:   actual,
	}
	if !check.Valid {
		check.Error = "hash mismatch"
	}
	return check, nil
}

// VerifyAllBackups checks every backup copy of a file, keyed by version
// number.
func (e *Engine) VerifyAllBackups(fileID string) (map[int]BackupCheck, error) {
	versions, err := e.catalog.ListVersions(fileID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}

	checks := make(map[int]BackupCheck, len(versions))
	for _, v := range versions {
		check, err := e.VerifyBackup(fileID, v.VersionNumber)
		if err != nil {
			return nil, err
		}
		checks[v.VersionNumber] = check
	}
	return checks, nil
}

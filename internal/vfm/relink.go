package vfm

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// RelinkOptions narrows the candidate scan when relinking missing files.
type RelinkOptions struct {
	// Root is the directory walked for candidates. Required.
	Root string
	// UseHash requires a candidate's content hash to match the stored
	// hash before relinking. Without it, the closest mtime among
	// size-matched candidates wins.
	UseHash bool
	// IncludeExts limits candidates to these extensions (no dot,
	// lowercase). Empty means all.
	IncludeExts []string
	// MaxSizeBytes skips candidates larger than this. Zero means no cap.
	MaxSizeBytes int64
	// ModifiedWithin skips candidates older than this. Zero means no cap.
	ModifiedWithin time.Duration
}

// RelinkSummary reports what a relink pass did.
type RelinkSummary struct {
	Checked      int `json:"checked"` // missing files considered
	Relinked     int `json:"relinked"`
	NotFound     int `json:"not_found"`
	Scanned      int `json:"scanned"` // distinct candidate filenames indexed
	HashChecked  int `json:"hash_checked"`
	SizeFiltered int `json:"size_filtered"`
	DateFiltered int `json:"date_filtered"`
}

type relinkCandidate struct {
	path  string
	size  int64
	mtime time.Time
}

// Relink scans opts.Root for files that match missing tracked files by
// filename, preferring exact size matches, and repoints the catalog entry
// at the found location. A RELINK event is appended per repointed file.
func (r *Registry) Relink(opts RelinkOptions) (*RelinkSummary, error) {
	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("relink root is not a directory: %s", opts.Root)
	}

	summary := &RelinkSummary{}
	index, err := r.indexCandidates(opts, summary)
	if err != nil {
		return nil, err
	}
	summary.Scanned = len(index)

	files, err := r.catalog.ListFiles(false)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	for _, file := range files {
		if file.Status != model.StatusMissing {
			if _, err := os.Stat(file.FilePath); err == nil {
				continue
			}
		}
		summary.Checked++

		candidate, hash, ok := r.pickCandidate(file, index[filepath.Base(file.FilePath)], opts, summary)
		if !ok {
			summary.NotFound++
			continue
		}

		unlock := r.locks.Lock(file.ID)
		err := r.catalog.UpdateFileLocation(file.ID, candidate.path, candidate.size, candidate.mtime, hash, model.StatusOK)
		unlock()
		if err != nil {
			return summary, fmt.Errorf("updating location for %s: %w", file.ID, err)
		}

		r.appendEvent(file.ID, model.EventRelink, fmt.Sprintf("Relinked to %s", candidate.path))
		r.logger.Info("file relinked", "file_id", file.ID, "path", candidate.path)
		summary.Relinked++
	}

	return summary, nil
}

// indexCandidates walks the root and groups candidates by filename.
func (r *Registry) indexCandidates(opts RelinkOptions, summary *RelinkSummary) (map[string][]relinkCandidate, error) {
	var cutoff time.Time
	if opts.ModifiedWithin > 0 {
		cutoff = r.clock.Now().Add(-opts.ModifiedWithin)
	}

	exts := make(map[string]bool, len(opts.IncludeExts))
	for _, e := range opts.IncludeExts {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	index := make(map[string][]relinkCandidate)
	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			r.logger.Debug("relink scan skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(exts) > 0 {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(d.Name()), "."))
			if !exts[ext] {
				return nil
			}
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if opts.MaxSizeBytes > 0 && info.Size() > opts.MaxSizeBytes {
			summary.SizeFiltered++
			return nil
		}
		if !cutoff.IsZero() && info.ModTime().Before(cutoff) {
			summary.DateFiltered++
			return nil
		}
		index[d.Name()] = append(index[d.Name()], relinkCandidate{
			path:  path,
			size:  info.Size(),
			mtime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", opts.Root, err)
	}
	return index, nil
}

// pickCandidate selects the best candidate for a missing file. Exact size
// matches are preferred; with UseHash, only a content-hash match qualifies.
func (r *Registry) pickCandidate(file *model.TrackedFile, candidates []relinkCandidate, opts RelinkOptions, summary *RelinkSummary) (relinkCandidate, string, bool) {
	if len(candidates) == 0 {
		return relinkCandidate{}, "", false
	}

	sizeMatched := make([]relinkCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.size == file.FileSize {
			sizeMatched = append(sizeMatched, c)
		}
	}
	pool := sizeMatched
	if len(pool) == 0 {
		pool = candidates
	}

	if opts.UseHash && file.FileHash != "" {
		for _, c := range pool {
			hash, err := r.hasher.Sum(c.path)
			summary.HashChecked++
			if err != nil {
				continue
			}
			if hash == file.FileHash {
				return c, hash, true
			}
		}
		return relinkCandidate{}, "", false
	}

	best := pool[0]
	bestDiff := absDuration(best.mtime.Sub(file.ModifiedTime))
	for _, c := range pool[1:] {
		if d := absDuration(c.mtime.Sub(file.ModifiedTime)); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best, file.FileHash, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

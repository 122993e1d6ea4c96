package vfm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/dit-jay93/VersionManager/internal/model"
)

// Engine compares live file state against the catalog and transitions each
// file through the OK/MODIFIED/MISSING state machine. Status is always
// derived from exact content-hash equality, never from size or mtime alone.
type Engine struct {
	catalog Catalog
	hasher  Hasher
	logger  Logger
	clock   Clock
	idgen   IDGenerator

	// dedupEvents suppresses a VERIFY_MODIFIED or VERIFY_MISSING event
	// when the file was already in that state, so repeated verification
	// does not spam the timeline.
	dedupEvents bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithoutEventDedup records a drift event on every verification that finds
// drift, not only on state transitions.
func WithoutEventDedup() EngineOption {
	return func(e *Engine) { e.dedupEvents = false }
}

// NewEngine creates a verification engine.
func NewEngine(catalog Catalog, hasher Hasher, logger Logger, clock Clock, idgen IDGenerator, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:     catalog,
		hasher:      hasher,
		logger:      logger,
		clock:       clock,
		idgen:       idgen,
		dedupEvents: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Verify checks one tracked file and updates its status. Idempotent:
// verifying twice with no intervening change yields the same status and,
// with dedup on, no duplicate event.
func (e *Engine) Verify(fileID string) (model.FileStatus, error) {
	file, err := e.catalog.FindFileByID(fileID)
	if err != nil {
		return "", fmt.Errorf("finding file: %w", err)
	}
	if file == nil {
		return "", fmt.Errorf("%w: file %s", ErrNotFound, fileID)
	}
	return e.verifyFile(file)
}

func (e *Engine) verifyFile(file *model.TrackedFile) (model.FileStatus, error) {
	status, err := e.currentStatus(file)
	if err != nil {
		return "", err
	}

	if status != file.Status {
		if err := e.catalog.UpdateFileStatus(file.ID, status); err != nil {
			return "", fmt.Errorf("updating status: %w", err)
		}
	}

	switch status {
	case model.StatusMissing:
		if !e.dedupEvents || file.Status != model.StatusMissing {
			e.recordEvent(file.ID, model.EventVerifyMissing, "File missing from disk")
		}
	case model.StatusModified:
		if !e.dedupEvents || file.Status != model.StatusModified {
			e.recordEvent(file.ID, model.EventVerifyModified, "Content differs from last version")
		}
	}

	return status, nil
}

// currentStatus derives the file's status from disk.
func (e *Engine) currentStatus(file *model.TrackedFile) (model.FileStatus, error) {
	if _, err := os.Stat(file.FilePath); err != nil {
		if os.IsNotExist(err) {
			return model.StatusMissing, nil
		}
		return "", fmt.Errorf("stat %s: %w", file.FilePath, err)
	}

	hash, err := e.hasher.Sum(file.FilePath)
	if err != nil {
		if errors.Is(err, ErrSourceMissing) {
			// Vanished between stat and hash.
			return model.StatusMissing, nil
		}
		return "", err
	}

	if hash == file.FileHash {
		return model.StatusOK, nil
	}
	return model.StatusModified, nil
}

// markMissing persists MISSING for a file whose verification failed outright,
// so the stored status matches what the batch summary reports. Events follow
// the same transition/dedup rules as a normal missing-file verify.
func (e *Engine) markMissing(file *model.TrackedFile) model.FileStatus {
	if file.Status != model.StatusMissing {
		if err := e.catalog.UpdateFileStatus(file.ID, model.StatusMissing); err != nil {
			e.logger.Warn("updating status", "file_id", file.ID, "error", err)
		}
	}
	if !e.dedupEvents || file.Status != model.StatusMissing {
		e.recordEvent(file.ID, model.EventVerifyMissing, "File unreadable during verification")
	}
	return model.StatusMissing
}

func (e *Engine) recordEvent(fileID string, kind model.EventKind, description string) {
	ev := &model.Event{
		ID:          e.idgen.New(),
		FileID:      fileID,
		Kind:        kind,
		Description: description,
		CreatedAt:   e.clock.Now(),
	}
	if err := e.catalog.AppendEvent(ev); err != nil {
		e.logger.Warn("appending verify event", "file_id", fileID, "kind", string(kind), "error", err)
	}
}

// Summary aggregates the outcome of a VerifyAll run.
type Summary struct {
	Statuses map[string]model.FileStatus `json:"statuses"`
	OK       int                         `json:"ok"`
	Modified int                         `json:"modified"`
	Missing  int                         `json:"missing"`
	Total    int                         `json:"total"`
}

// VerifyAll verifies every catalog entry across a bounded worker pool.
// One unreadable file does not abort the rest: per-file errors degrade the
// file to MISSING, in the summary and the catalog both, and are logged. The run is interruptible;
// ctx is checked before each file is picked up, and no file is ever left
// half-updated.
func (e *Engine) VerifyAll(ctx context.Context) (*Summary, error) {
	files, err := e.catalog.ListFiles(true)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	type result struct {
		fileID string
		status model.FileStatus
	}

	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *model.TrackedFile)
	results := make(chan result, len(files))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				status, verr := e.verifyFile(file)
				if verr != nil {
					e.logger.Warn("verification failed", "file_id", file.ID, "error", verr)
					status = e.markMissing(file)
				}
				results <- result{fileID: file.ID, status: status}
			}
		}()
	}

	var ctxErr error
feed:
	for _, file := range files {
		// Check cancellation before racing it against a send.
		if ctx.Err() != nil {
			ctxErr = ctx.Err()
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	summary := &Summary{Statuses: make(map[string]model.FileStatus)}
	for res := range results {
		summary.Statuses[res.fileID] = res.status
		summary.Total++
		switch res.status {
		case model.StatusOK:
			summary.OK++
		case model.StatusModified:
			summary.Modified++
		case model.StatusMissing:
			summary.Missing++
		}
	}

	if ctxErr != nil {
		return summary, ctxErr
	}
	e.logger.Info("verification complete", "total", summary.Total, "ok", summary.OK,
		"modified", summary.Modified, "missing", summary.Missing)
	return summary, nil
}

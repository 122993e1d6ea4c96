package vfm_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/testutil"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

func newTestEngine(t *testing.T, catalog vfm.Catalog, opts ...vfm.EngineOption) *vfm.Engine {
	t.Helper()
	return vfm.NewEngine(catalog, vfm.NewXXH3Hasher(), vfm.NewNopLogger(),
		testutil.FixedClock(), testutil.NewStubIDGenerator(), opts...)
}

func TestEngine_Verify(t *testing.T) {
	t.Run("unchanged file stays OK", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		path := writeFile(t, t.TempDir(), "a.txt", "stable")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		status, err := engine.Verify(file.ID)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if status != model.StatusOK {
			t.Errorf("Verify() = %q, want OK", status)
		}
	})

	t.Run("edited file transitions to MODIFIED", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "before")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		writeFile(t, dir, "a.txt", "after")
		status, err := engine.Verify(file.ID)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if status != model.StatusModified {
			t.Errorf("Verify() = %q, want MODIFIED", status)
		}

		got, err := reg.GetFile(file.ID)
		if err != nil {
			t.Fatalf("GetFile() error = %v", err)
		}
		if got.Status != model.StatusModified {
			t.Errorf("persisted status = %q, want MODIFIED", got.Status)
		}
	})

	t.Run("same content in same size is still MODIFIED when hash differs", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "aaaa")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		// Same length, different bytes. A size check alone would miss this.
		writeFile(t, dir, "a.txt", "bbbb")
		status, err := engine.Verify(file.ID)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if status != model.StatusModified {
			t.Errorf("Verify() = %q, want MODIFIED", status)
		}
	})

	t.Run("deleted file transitions to MISSING", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		path := writeFile(t, t.TempDir(), "a.txt", "x")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		os.Remove(path)
		status, err := engine.Verify(file.ID)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if status != model.StatusMissing {
			t.Errorf("Verify() = %q, want MISSING", status)
		}
	})

	t.Run("MISSING recovers to OK when the file returns unchanged", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "content")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		os.Remove(path)
		if _, err := engine.Verify(file.ID); err != nil {
			t.Fatalf("Verify() error = %v", err)
		}

		writeFile(t, dir, "a.txt", "content")
		status, err := engine.Verify(file.ID)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if status != model.StatusOK {
			t.Errorf("Verify() = %q, want OK", status)
		}
	})

	t.Run("fails for an unknown file", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		engine := newTestEngine(t, catalog)

		if _, err := engine.Verify("no-such-id"); !errors.Is(err, vfm.ErrNotFound) {
			t.Fatalf("Verify() error = %v, want ErrNotFound", err)
		}
	})
}

func TestEngine_EventDedup(t *testing.T) {
	t.Run("repeated drift records one event", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "before")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		writeFile(t, dir, "a.txt", "after")
		for i := 0; i < 3; i++ {
			if _, err := engine.Verify(file.ID); err != nil {
				t.Fatalf("Verify() #%d error = %v", i+1, err)
			}
		}

		events, err := reg.ListEvents(file.ID, 0)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("len(events) = %d, want 1", len(events))
		}
		if events[0].Kind != model.EventVerifyModified {
			t.Errorf("Kind = %q, want VERIFY_MODIFIED", events[0].Kind)
		}
	})

	t.Run("without dedup every drift check records an event", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog, vfm.WithoutEventDedup())

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "before")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		writeFile(t, dir, "a.txt", "after")
		for i := 0; i < 3; i++ {
			if _, err := engine.Verify(file.ID); err != nil {
				t.Fatalf("Verify() #%d error = %v", i+1, err)
			}
		}

		events, err := reg.ListEvents(file.ID, 0)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("len(events) = %d, want 3", len(events))
		}
	})

	t.Run("verify-OK records no event", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		path := writeFile(t, t.TempDir(), "a.txt", "stable")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if _, err := engine.Verify(file.ID); err != nil {
			t.Fatalf("Verify() error = %v", err)
		}

		events, err := reg.ListEvents(file.ID, 0)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(events) != 0 {
			t.Errorf("len(events) = %d, want 0", len(events))
		}
	})
}

func TestEngine_VerifyAll(t *testing.T) {
	t.Run("counts each status", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		okPath := writeFile(t, dir, "ok.txt", "stable")
		modPath := writeFile(t, dir, "mod.txt", "before")
		missPath := writeFile(t, dir, "miss.txt", "gone soon")

		if _, _, err := reg.Register(okPath, "initial", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		modFile, _, err := reg.Register(modPath, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		missFile, _, err := reg.Register(missPath, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		writeFile(t, dir, "mod.txt", "after")
		os.Remove(missPath)

		summary, err := engine.VerifyAll(context.Background())
		if err != nil {
			t.Fatalf("VerifyAll() error = %v", err)
		}

		if summary.Total != 3 {
			t.Errorf("Total = %d, want 3", summary.Total)
		}
		if summary.OK != 1 || summary.Modified != 1 || summary.Missing != 1 {
			t.Errorf("counts = %d/%d/%d, want 1/1/1", summary.OK, summary.Modified, summary.Missing)
		}
		if summary.Statuses[modFile.ID] != model.StatusModified {
			t.Errorf("Statuses[mod] = %q, want MODIFIED", summary.Statuses[modFile.ID])
		}
		if summary.Statuses[missFile.ID] != model.StatusMissing {
			t.Errorf("Statuses[miss] = %q, want MISSING", summary.Statuses[missFile.ID])
		}
	})

	t.Run("unreadable file is persisted MISSING", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "content")
		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		// A directory at the tracked path passes the stat but fails the
		// content read, so verification errors rather than deriving a status.
		os.Remove(path)
		if err := os.Mkdir(path, 0755); err != nil {
			t.Fatalf("creating directory: %v", err)
		}

		summary, err := engine.VerifyAll(context.Background())
		if err != nil {
			t.Fatalf("VerifyAll() error = %v", err)
		}
		if summary.Statuses[file.ID] != model.StatusMissing {
			t.Errorf("Statuses[file] = %q, want MISSING", summary.Statuses[file.ID])
		}

		stored, err := catalog.FindFileByID(file.ID)
		if err != nil {
			t.Fatalf("FindFileByID() error = %v", err)
		}
		if stored.Status != model.StatusMissing {
			t.Errorf("stored status = %q, want MISSING", stored.Status)
		}

		events, err := catalog.ListEvents(file.ID, 0)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(events) != 1 || events[0].Kind != model.EventVerifyMissing {
			t.Errorf("events = %+v, want one VERIFY_MISSING", events)
		}
	})

	t.Run("empty catalog yields an empty summary", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		engine := newTestEngine(t, catalog)

		summary, err := engine.VerifyAll(context.Background())
		if err != nil {
			t.Fatalf("VerifyAll() error = %v", err)
		}
		if summary.Total != 0 {
			t.Errorf("Total = %d, want 0", summary.Total)
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		catalog := testutil.NewTestCatalog(t)
		reg := testutil.NewTestRegistry(catalog, testutil.NewTestStore())
		engine := newTestEngine(t, catalog)

		dir := t.TempDir()
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			path := writeFile(t, dir, name, name)
			if _, _, err := reg.Register(path, "initial", ""); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := engine.VerifyAll(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("VerifyAll() error = %v, want context.Canceled", err)
		}
	})
}

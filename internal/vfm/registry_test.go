package vfm_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/store"
	"github.com/dit-jay93/VersionManager/internal/testutil"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

func newTestRegistry(t *testing.T) (*vfm.Registry, *store.MemoryStore) {
	t.Helper()
	catalog := testutil.NewTestCatalog(t)
	vs := testutil.NewTestStore()
	return testutil.NewTestRegistry(catalog, vs), vs
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registers a file with version 1", func(t *testing.T) {
		reg, vs := newTestRegistry(t)
		path := writeFile(t, t.TempDir(), "notes.txt", "hello")

		file, version, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if file.DisplayName != "notes.txt" {
			t.Errorf("DisplayName = %q, want %q", file.DisplayName, "notes.txt")
		}
		if file.Status != model.StatusOK {
			t.Errorf("Status = %q, want OK", file.Status)
		}
		if file.FileSize != 5 {
			t.Errorf("FileSize = %d, want 5", file.FileSize)
		}
		if file.FileHash != testutil.XXH3Hex([]byte("hello")) {
			t.Errorf("FileHash = %q, want hash of content", file.FileHash)
		}
		if version.VersionNumber != 1 {
			t.Errorf("VersionNumber = %d, want 1", version.VersionNumber)
		}
		if version.CommitMessage != "initial" {
			t.Errorf("CommitMessage = %q, want %q", version.CommitMessage, "initial")
		}
		if vs.BackupCount() != 1 {
			t.Errorf("BackupCount() = %d, want 1", vs.BackupCount())
		}
	})

	t.Run("uses explicit display name", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		path := writeFile(t, t.TempDir(), "a.txt", "x")

		file, _, err := reg.Register(path, "initial", "My Notes")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if file.DisplayName != "My Notes" {
			t.Errorf("DisplayName = %q, want %q", file.DisplayName, "My Notes")
		}
	})

	t.Run("rejects a duplicate path", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		path := writeFile(t, t.TempDir(), "a.txt", "x")

		first, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("first Register() error = %v", err)
		}

		existing, _, err := reg.Register(path, "again", "")
		if !errors.Is(err, vfm.ErrAlreadyTracked) {
			t.Fatalf("second Register() error = %v, want ErrAlreadyTracked", err)
		}
		if existing == nil || existing.ID != first.ID {
			t.Error("second Register() should return the existing record")
		}
	})

	t.Run("rejects a missing source", func(t *testing.T) {
		reg, vs := newTestRegistry(t)

		_, _, err := reg.Register(filepath.Join(t.TempDir(), "absent.txt"), "initial", "")
		if !errors.Is(err, vfm.ErrSourceMissing) {
			t.Fatalf("Register() error = %v, want ErrSourceMissing", err)
		}
		if vs.BackupCount() != 0 {
			t.Errorf("BackupCount() = %d, want 0", vs.BackupCount())
		}
	})
}

func TestRegistry_CreateVersion(t *testing.T) {
	t.Run("assigns gapless increasing numbers", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "v1")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		for i, content := range []string{"v2", "v3", "v4"} {
			writeFile(t, dir, "a.txt", content)
			v, err := reg.CreateVersion(file.ID, content)
			if err != nil {
				t.Fatalf("CreateVersion() error = %v", err)
			}
			if v.VersionNumber != i+2 {
				t.Errorf("VersionNumber = %d, want %d", v.VersionNumber, i+2)
			}
		}

		versions, err := reg.ListVersions(file.ID)
		if err != nil {
			t.Fatalf("ListVersions() error = %v", err)
		}
		if len(versions) != 4 {
			t.Fatalf("len(versions) = %d, want 4", len(versions))
		}
		for i, v := range versions {
			if v.VersionNumber != i+1 {
				t.Errorf("versions[%d].VersionNumber = %d, want %d", i, v.VersionNumber, i+1)
			}
		}
	})

	t.Run("refreshes the file state to the new snapshot", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "short")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		writeFile(t, dir, "a.txt", "much longer content")
		if _, err := reg.CreateVersion(file.ID, "grew"); err != nil {
			t.Fatalf("CreateVersion() error = %v", err)
		}

		got, err := reg.GetFile(file.ID)
		if err != nil {
			t.Fatalf("GetFile() error = %v", err)
		}
		if got.FileSize != int64(len("much longer content")) {
			t.Errorf("FileSize = %d, want %d", got.FileSize, len("much longer content"))
		}
		if got.FileHash != testutil.XXH3Hex([]byte("much longer content")) {
			t.Error("FileHash was not refreshed")
		}
		if got.Status != model.StatusOK {
			t.Errorf("Status = %q, want OK", got.Status)
		}
	})

	t.Run("fails for an unknown file", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		_, err := reg.CreateVersion("no-such-id", "msg")
		if !errors.Is(err, vfm.ErrNotFound) {
			t.Fatalf("CreateVersion() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("fails when the live file is gone", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "x")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		os.Remove(path)
		_, err = reg.CreateVersion(file.ID, "msg")
		if !errors.Is(err, vfm.ErrSourceMissing) {
			t.Fatalf("CreateVersion() error = %v, want ErrSourceMissing", err)
		}
	})
}

func TestRegistry_Delete(t *testing.T) {
	t.Run("removes catalog rows and backups", func(t *testing.T) {
		reg, vs := newTestRegistry(t)
		dir := t.TempDir()
		path := writeFile(t, dir, "a.txt", "v1")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		writeFile(t, dir, "a.txt", "v2")
		if _, err := reg.CreateVersion(file.ID, "second"); err != nil {
			t.Fatalf("CreateVersion() error = %v", err)
		}
		if _, err := reg.TogglePin(file.ID, 1); err != nil {
			t.Fatalf("TogglePin() error = %v", err)
		}

		if err := reg.Delete(file.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := reg.GetFile(file.ID); !errors.Is(err, vfm.ErrNotFound) {
			t.Errorf("GetFile() after delete error = %v, want ErrNotFound", err)
		}
		if vs.BackupCount() != 0 {
			t.Errorf("BackupCount() = %d, want 0", vs.BackupCount())
		}
		if vs.PinnedCount() != 0 {
			t.Errorf("PinnedCount() = %d, want 0", vs.PinnedCount())
		}
	})

	t.Run("keeps the live file on disk", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		path := writeFile(t, t.TempDir(), "a.txt", "keep me")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if err := reg.Delete(file.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("live file missing after delete: %v", err)
		}
		if string(data) != "keep me" {
			t.Errorf("live file content = %q, want %q", data, "keep me")
		}
	})

	t.Run("fails for an unknown file", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		if err := reg.Delete("no-such-id"); !errors.Is(err, vfm.ErrNotFound) {
			t.Fatalf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRegistry_Flags(t *testing.T) {
	reg, _ := newTestRegistry(t)
	path := writeFile(t, t.TempDir(), "a.txt", "x")

	file, _, err := reg.Register(path, "initial", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := reg.SetFavorite(file.ID, true); err != nil {
		t.Fatalf("SetFavorite() error = %v", err)
	}
	if err := reg.SetArchived(file.ID, true); err != nil {
		t.Fatalf("SetArchived() error = %v", err)
	}
	if err := reg.Rename(file.ID, "renamed"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	got, err := reg.GetFile(file.ID)
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if !got.IsFavorite || !got.IsArchived {
		t.Errorf("flags = favorite:%v archived:%v, want both true", got.IsFavorite, got.IsArchived)
	}
	if got.DisplayName != "renamed" {
		t.Errorf("DisplayName = %q, want %q", got.DisplayName, "renamed")
	}

	// Archived files drop out of the default listing.
	files, err := reg.ListFiles(false)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles(false) returned %d files, want 0", len(files))
	}
	files, err = reg.ListFiles(true)
	if err != nil {
		t.Fatalf("ListFiles(true) error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("ListFiles(true) returned %d files, want 1", len(files))
	}
}

func TestRegistry_Metadata(t *testing.T) {
	reg, _ := newTestRegistry(t)
	path := writeFile(t, t.TempDir(), "photo.jpg", "jpegbytes")

	file, _, err := reg.Register(path, "initial", "")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := reg.GetMetadata(file.ID)
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if got != nil {
		t.Fatalf("GetMetadata() = %+v, want nil before set", got)
	}

	meta := model.FileMetadata{
		Kind:  model.MetadataImage,
		Image: &model.ImageMetadata{Width: 800, Height: 600},
	}
	if err := reg.SetMetadata(file.ID, meta); err != nil {
		t.Fatalf("SetMetadata() error = %v", err)
	}

	got, err = reg.GetMetadata(file.ID)
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if got == nil || got.Kind != model.MetadataImage {
		t.Fatalf("GetMetadata() = %+v, want image metadata", got)
	}
	if got.Image.Width != 800 || got.Image.Height != 600 {
		t.Errorf("Image = %+v, want 800x600", got.Image)
	}
}

package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dit-jay93/VersionManager/internal/store"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

func newTestFileSystemStore(t *testing.T) (*store.FileSystemStore, string) {
	t.Helper()
	root := t.TempDir()
	s, err := store.NewFileSystemStore(root, "", vfm.NewNopLogger())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}
	return s, root
}

func writeTestFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestFileSystemStore_Backup(t *testing.T) {
	t.Run("copies into versions/<fileID>/v<N><ext>", func(t *testing.T) {
		s, root := newTestFileSystemStore(t)
		src := writeTestFile(t, t.TempDir(), "photo.jpg", "jpeg bytes")

		got, err := s.Backup("file-1", src, 3)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		want := filepath.Join(root, "versions", "file-1", "v3.jpg")
		if got != want {
			t.Errorf("backup path = %q, want %q", got, want)
		}

		data, err := os.ReadFile(got)
		if err != nil {
			t.Fatalf("reading backup: %v", err)
		}
		if string(data) != "jpeg bytes" {
			t.Errorf("backup content = %q, want %q", data, "jpeg bytes")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		s, root := newTestFileSystemStore(t)
		src := writeTestFile(t, t.TempDir(), "a.txt", "x")

		if _, err := s.Backup("file-1", src, 1); err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		entries, err := os.ReadDir(filepath.Join(root, "versions", "file-1"))
		if err != nil {
			t.Fatalf("reading backup dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("backup dir has %d entries, want 1", len(entries))
		}
	})

	t.Run("missing source yields ErrSourceMissing", func(t *testing.T) {
		s, _ := newTestFileSystemStore(t)

		_, err := s.Backup("file-1", filepath.Join(t.TempDir(), "absent"), 1)
		if !errors.Is(err, vfm.ErrSourceMissing) {
			t.Fatalf("Backup() error = %v, want ErrSourceMissing", err)
		}
	})
}

func TestFileSystemStore_Restore(t *testing.T) {
	t.Run("overwrites the target in place", func(t *testing.T) {
		s, _ := newTestFileSystemStore(t)
		dir := t.TempDir()
		src := writeTestFile(t, dir, "doc.txt", "good")

		backup, err := s.Backup("file-1", src, 1)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		writeTestFile(t, dir, "doc.txt", "bad edit")
		if err := s.Restore(backup, src); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		data, err := os.ReadFile(src)
		if err != nil {
			t.Fatalf("reading restored file: %v", err)
		}
		if string(data) != "good" {
			t.Errorf("restored content = %q, want %q", data, "good")
		}
	})

	t.Run("recreates a deleted target", func(t *testing.T) {
		s, _ := newTestFileSystemStore(t)
		dir := t.TempDir()
		src := writeTestFile(t, dir, "doc.txt", "content")

		backup, err := s.Backup("file-1", src, 1)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		os.Remove(src)
		if err := s.Restore(backup, src); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if _, err := os.Stat(src); err != nil {
			t.Fatalf("restored file missing: %v", err)
		}
	})

	t.Run("missing backup yields ErrBackupMissing", func(t *testing.T) {
		s, root := newTestFileSystemStore(t)

		err := s.Restore(filepath.Join(root, "versions", "x", "v1.txt"), filepath.Join(t.TempDir(), "out.txt"))
		if !errors.Is(err, vfm.ErrBackupMissing) {
			t.Fatalf("Restore() error = %v, want ErrBackupMissing", err)
		}
	})
}

func TestFileSystemStore_Pin(t *testing.T) {
	t.Run("writes <stem>_v<N><ext> into the pinned directory", func(t *testing.T) {
		s, root := newTestFileSystemStore(t)
		src := writeTestFile(t, t.TempDir(), "report.pdf", "pdf bytes")

		backup, err := s.Backup("file-1", src, 2)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		pinned, err := s.Pin(backup, "Quarterly Report.pdf", 2)
		if err != nil {
			t.Fatalf("Pin() error = %v", err)
		}

		want := filepath.Join(root, "pinned", "Quarterly Report_v2.pdf")
		if pinned != want {
			t.Errorf("pinned path = %q, want %q", pinned, want)
		}
		data, err := os.ReadFile(pinned)
		if err != nil {
			t.Fatalf("reading pinned copy: %v", err)
		}
		if string(data) != "pdf bytes" {
			t.Errorf("pinned content = %q, want %q", data, "pdf bytes")
		}
	})

	t.Run("pin twice leaves one copy", func(t *testing.T) {
		s, root := newTestFileSystemStore(t)
		src := writeTestFile(t, t.TempDir(), "a.txt", "x")

		backup, err := s.Backup("file-1", src, 1)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}

		if _, err := s.Pin(backup, "a.txt", 1); err != nil {
			t.Fatalf("first Pin() error = %v", err)
		}
		if _, err := s.Pin(backup, "a.txt", 1); err != nil {
			t.Fatalf("second Pin() error = %v", err)
		}

		entries, err := os.ReadDir(filepath.Join(root, "pinned"))
		if err != nil {
			t.Fatalf("reading pinned dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("pinned dir has %d entries, want 1", len(entries))
		}
	})

	t.Run("unpin is idempotent", func(t *testing.T) {
		s, _ := newTestFileSystemStore(t)
		src := writeTestFile(t, t.TempDir(), "a.txt", "x")

		backup, err := s.Backup("file-1", src, 1)
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		pinned, err := s.Pin(backup, "a.txt", 1)
		if err != nil {
			t.Fatalf("Pin() error = %v", err)
		}

		if err := s.Unpin(pinned); err != nil {
			t.Fatalf("first Unpin() error = %v", err)
		}
		if err := s.Unpin(pinned); err != nil {
			t.Fatalf("second Unpin() error = %v", err)
		}
		if _, err := os.Stat(pinned); !os.IsNotExist(err) {
			t.Error("pinned copy still exists after unpin")
		}
	})
}

func TestFileSystemStore_DeleteBackups(t *testing.T) {
	s, root := newTestFileSystemStore(t)
	dir := t.TempDir()
	src := writeTestFile(t, dir, "a.txt", "v1")

	if _, err := s.Backup("file-1", src, 1); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	writeTestFile(t, dir, "a.txt", "v2")
	backup2, err := s.Backup("file-1", src, 2)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	pinned, err := s.Pin(backup2, "a.txt", 2)
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}

	if err := s.DeleteBackups("file-1", []string{pinned}); err != nil {
		t.Fatalf("DeleteBackups() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "versions", "file-1")); !os.IsNotExist(err) {
		t.Error("backup directory still exists")
	}
	if _, err := os.Stat(pinned); !os.IsNotExist(err) {
		t.Error("pinned copy still exists")
	}
}

func TestFileSystemStore_CustomPinDir(t *testing.T) {
	root := t.TempDir()
	pinDir := filepath.Join(t.TempDir(), "exports")
	s, err := store.NewFileSystemStore(root, pinDir, vfm.NewNopLogger())
	if err != nil {
		t.Fatalf("NewFileSystemStore() error = %v", err)
	}

	src := writeTestFile(t, t.TempDir(), "a.txt", "x")
	backup, err := s.Backup("file-1", src, 1)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	pinned, err := s.Pin(backup, "a.txt", 1)
	if err != nil {
		t.Fatalf("Pin() error = %v", err)
	}
	if filepath.Dir(pinned) != pinDir {
		t.Errorf("pinned dir = %q, want %q", filepath.Dir(pinned), pinDir)
	}
}

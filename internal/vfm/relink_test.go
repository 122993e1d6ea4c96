package vfm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dit-jay93/VersionManager/internal/model"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

func moveFile(t *testing.T, from string, to string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		t.Fatalf("creating target dir: %v", err)
	}
	if err := os.Rename(from, to); err != nil {
		t.Fatalf("moving file: %v", err)
	}
}

func TestRegistry_Relink(t *testing.T) {
	t.Run("repoints a moved file found by name and size", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		oldDir := t.TempDir()
		newRoot := t.TempDir()
		path := writeFile(t, oldDir, "moved.txt", "travels")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		newPath := filepath.Join(newRoot, "sub", "moved.txt")
		moveFile(t, path, newPath)

		summary, err := reg.Relink(vfm.RelinkOptions{Root: newRoot})
		if err != nil {
			t.Fatalf("Relink() error = %v", err)
		}
		if summary.Relinked != 1 {
			t.Fatalf("Relinked = %d, want 1", summary.Relinked)
		}

		got, err := reg.GetFile(file.ID)
		if err != nil {
			t.Fatalf("GetFile() error = %v", err)
		}
		if got.FilePath != newPath {
			t.Errorf("FilePath = %q, want %q", got.FilePath, newPath)
		}
		if got.Status != model.StatusOK {
			t.Errorf("Status = %q, want OK", got.Status)
		}

		events, err := reg.ListEvents(file.ID, 0)
		if err != nil {
			t.Fatalf("ListEvents() error = %v", err)
		}
		if len(events) != 1 || events[0].Kind != model.EventRelink {
			t.Errorf("events = %+v, want one RELINK", events)
		}
	})

	t.Run("hash mode picks the candidate with matching content", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		oldDir := t.TempDir()
		newRoot := t.TempDir()
		path := writeFile(t, oldDir, "doc.txt", "abcd")

		file, _, err := reg.Register(path, "initial", "")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		os.Remove(path)

		// Two same-named, same-sized candidates. Only one matches by content.
		decoy := filepath.Join(newRoot, "wrong", "doc.txt")
		if err := os.MkdirAll(filepath.Dir(decoy), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(decoy, []byte("zzzz"), 0644); err != nil {
			t.Fatal(err)
		}
		real := filepath.Join(newRoot, "right", "doc.txt")
		if err := os.MkdirAll(filepath.Dir(real), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(real, []byte("abcd"), 0644); err != nil {
			t.Fatal(err)
		}

		summary, err := reg.Relink(vfm.RelinkOptions{Root: newRoot, UseHash: true})
		if err != nil {
			t.Fatalf("Relink() error = %v", err)
		}
		if summary.Relinked != 1 {
			t.Fatalf("Relinked = %d, want 1", summary.Relinked)
		}

		got, err := reg.GetFile(file.ID)
		if err != nil {
			t.Fatalf("GetFile() error = %v", err)
		}
		if got.FilePath != real {
			t.Errorf("FilePath = %q, want %q", got.FilePath, real)
		}
	})

	t.Run("reports files that stay missing", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		path := writeFile(t, t.TempDir(), "gone.txt", "x")

		if _, _, err := reg.Register(path, "initial", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		os.Remove(path)

		summary, err := reg.Relink(vfm.RelinkOptions{Root: t.TempDir()})
		if err != nil {
			t.Fatalf("Relink() error = %v", err)
		}
		if summary.Checked != 1 || summary.NotFound != 1 || summary.Relinked != 0 {
			t.Errorf("summary = %+v, want checked 1, not found 1", summary)
		}
	})

	t.Run("extension filter skips other types", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		oldDir := t.TempDir()
		newRoot := t.TempDir()
		path := writeFile(t, oldDir, "clip.mov", "frames")

		if _, _, err := reg.Register(path, "initial", ""); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		moveFile(t, path, filepath.Join(newRoot, "clip.mov"))
		writeFile(t, newRoot, "noise.txt", "frames")

		summary, err := reg.Relink(vfm.RelinkOptions{Root: newRoot, IncludeExts: []string{"mov"}})
		if err != nil {
			t.Fatalf("Relink() error = %v", err)
		}
		if summary.Relinked != 1 {
			t.Errorf("Relinked = %d, want 1", summary.Relinked)
		}
		if summary.Scanned != 1 {
			t.Errorf("Scanned = %d, want 1", summary.Scanned)
		}
	})

	t.Run("rejects a non-directory root", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		if _, err := reg.Relink(vfm.RelinkOptions{Root: filepath.Join(t.TempDir(), "nope")}); err == nil {
			t.Fatal("Relink() expected error for missing root")
		}
	})
}

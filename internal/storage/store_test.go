package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestCreateAndLoad(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n.ID == "" {
		t.Fatal("Create() returned empty ID")
	}
	if _, err := os.Stat(s.PathFor(n.ID, false)); err != nil {
		t.Fatalf("draft file missing: %v", err)
	}

	loaded, err := s.Load(n.ID, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Content != "" {
		t.Errorf("new draft content = %q, want empty", loaded.Content)
	}
	if loaded.Title != "Untitled" {
		t.Errorf("new draft title = %q, want %q", loaded.Title, "Untitled")
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	content := "# Groceries\n\n- [ ] milk\n"
	if err := s.Save(n.ID, content, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(n.ID, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Content != content {
		t.Errorf("content = %q, want %q", loaded.Content, content)
	}
	if loaded.Title != "Groceries" {
		t.Errorf("title = %q, want %q", loaded.Title, "Groceries")
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("UpdatedAt is zero")
	}

	// The temp file from the atomic write must not survive.
	if _, err := os.Stat(s.PathFor(n.ID, false) + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Save")
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	ids := make([]string, 3)
	base := time.Now().Add(-time.Hour)
	for i := range ids {
		n, err := s.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids[i] = n.ID
		mtime := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(s.PathFor(n.ID, false), mtime, mtime); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}
	}

	// A stray non-Markdown file must be ignored.
	if err := os.WriteFile(filepath.Join(s.DraftsDir(), "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	notes, err := s.List(false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("List() returned %d notes, want 3", len(notes))
	}
	want := []string{ids[2], ids[1], ids[0]}
	for i, n := range notes {
		if n.ID != want[i] {
			t.Errorf("notes[%d].ID = %s, want %s", i, n.ID, want[i])
		}
	}
}

func TestArchiveRestoreDelete(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Save(n.ID, "keep me", false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.Archive(n.ID); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	drafts, err := s.List(false)
	if err != nil {
		t.Fatalf("List(drafts) error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("drafts after archive = %d, want 0", len(drafts))
	}
	archived, err := s.List(true)
	if err != nil {
		t.Fatalf("List(archives) error = %v", err)
	}
	if len(archived) != 1 || !archived[0].Archived {
		t.Fatalf("archives = %+v, want one archived note", archived)
	}
	if archived[0].Content != "keep me" {
		t.Errorf("archived content = %q, want %q", archived[0].Content, "keep me")
	}

	// Saving while archived writes to the archive file.
	if err := s.Save(n.ID, "edited in archive", true); err != nil {
		t.Fatalf("Save(archived) error = %v", err)
	}
	reloaded, err := s.Load(n.ID, true)
	if err != nil {
		t.Fatalf("Load(archived) error = %v", err)
	}
	if reloaded.Content != "edited in archive" {
		t.Errorf("archived content after save = %q", reloaded.Content)
	}

	if err := s.Restore(n.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	drafts, err = s.List(false)
	if err != nil {
		t.Fatalf("List(drafts) error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("drafts after restore = %d, want 1", len(drafts))
	}

	if err := s.Delete(n.ID, false); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(n.ID, false); err == nil {
		t.Error("Load() after Delete() succeeded, want error")
	}
}

func TestMostRecentDraft(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.MostRecentDraft(); err != nil || ok {
		t.Fatalf("MostRecentDraft() on empty store = ok %v, err %v", ok, err)
	}

	old, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(s.PathFor(old.ID, false), past, past); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}
	fresh, err := s.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, ok, err := s.MostRecentDraft()
	if err != nil || !ok {
		t.Fatalf("MostRecentDraft() = ok %v, err %v", ok, err)
	}
	if got.ID != fresh.ID {
		t.Errorf("MostRecentDraft() = %s, want %s", got.ID, fresh.ID)
	}
}

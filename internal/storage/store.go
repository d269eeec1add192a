// Package storage owns the on-disk note layout: Markdown files named
// by UUID under drafts/ and archives/, plus the change watcher that
// keeps the app honest about external edits.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kenxcomp/kenotex/internal/note"
)

// Store reads and writes notes under a data directory.
type Store struct {
	dataDir string
}

// NewStore ensures the drafts and archives directories exist.
func NewStore(dataDir string) (*Store, error) {
	s := &Store{dataDir: dataDir}
	for _, dir := range []string{s.DraftsDir(), s.ArchivesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return s, nil
}

// DraftsDir returns the active notes directory.
func (s *Store) DraftsDir() string {
	return filepath.Join(s.dataDir, "drafts")
}

// ArchivesDir returns the archived notes directory.
func (s *Store) ArchivesDir() string {
	return filepath.Join(s.dataDir, "archives")
}

// PathFor returns the file path a note lives at.
func (s *Store) PathFor(id string, archived bool) string {
	dir := s.DraftsDir()
	if archived {
		dir = s.ArchivesDir()
	}
	return filepath.Join(dir, id+".md")
}

// Create writes a new empty draft with a time-ordered UUID name.
func (s *Store) Create() (note.Note, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to generate note id: %w", err)
	}
	n := note.Note{ID: id.String(), Title: note.TitleOf("")}
	if err := s.Save(n.ID, "", false); err != nil {
		return note.Note{}, err
	}
	return n, nil
}

// Save writes content to the note file via a temp file rename so a
// crash never leaves a half-written note.
func (s *Store) Save(id, content string, archived bool) error {
	path := s.PathFor(id, archived)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", id, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace note %s: %w", id, err)
	}
	return nil
}

// Load reads one note with its content.
func (s *Store) Load(id string, archived bool) (note.Note, error) {
	path := s.PathFor(id, archived)
	data, err := os.ReadFile(path)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to stat note %s: %w", id, err)
	}
	content := string(data)
	return note.Note{
		ID:        id,
		Title:     note.TitleOf(content),
		Content:   content,
		UpdatedAt: info.ModTime(),
		Archived:  archived,
	}, nil
}

// List returns all notes in one directory, newest first.
func (s *Store) List(archived bool) ([]note.Note, error) {
	dir := s.DraftsDir()
	if archived {
		dir = s.ArchivesDir()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var notes []note.Note
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		n, err := s.Load(id, archived)
		if err != nil {
			continue
		}
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

// MostRecentDraft returns the newest draft, or false when none exist.
func (s *Store) MostRecentDraft() (note.Note, bool, error) {
	notes, err := s.List(false)
	if err != nil {
		return note.Note{}, false, err
	}
	if len(notes) == 0 {
		return note.Note{}, false, nil
	}
	return notes[0], true, nil
}

// Delete removes a note file.
func (s *Store) Delete(id string, archived bool) error {
	if err := os.Remove(s.PathFor(id, archived)); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

// Archive moves a draft into archives/.
func (s *Store) Archive(id string) error {
	if err := os.Rename(s.PathFor(id, false), s.PathFor(id, true)); err != nil {
		return fmt.Errorf("failed to archive note %s: %w", id, err)
	}
	return nil
}

// Restore moves an archived note back into drafts/.
func (s *Store) Restore(id string) error {
	if err := os.Rename(s.PathFor(id, true), s.PathFor(id, false)); err != nil {
		return fmt.Errorf("failed to restore note %s: %w", id, err)
	}
	return nil
}

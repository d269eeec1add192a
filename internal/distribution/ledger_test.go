package distribution

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	defer l.Close()

	ctx := context.Background()
	records := []struct {
		text   string
		target Target
		status Status
	}{
		{":::td Buy milk", TargetTask, StatusSent},
		{"Meeting tomorrow", TargetCalendar, StatusFailed},
		{"an idea", TargetNote, StatusSkipped},
	}
	for _, r := range records {
		if err := l.Record(ctx, "note-1", r.text, r.target, r.status); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.NoteID != "note-1" {
			t.Errorf("entry note_id = %q, want note-1", e.NoteID)
		}
		if e.ID == "" {
			t.Error("entry has empty id")
		}
		if e.CreatedAt.IsZero() {
			t.Error("entry has zero created_at")
		}
	}

	statuses := map[string]bool{}
	for _, e := range entries {
		statuses[e.Status] = true
	}
	for _, want := range []string{"sent", "failed", "skipped"} {
		if !statuses[want] {
			t.Errorf("Recent() missing status %q", want)
		}
	}
}

func TestLedgerRecentLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	defer l.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := l.Record(ctx, "note-1", "block", TargetNote, StatusSent); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := l.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(entries))
	}
}

func TestLedgerReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	if err := l.Record(context.Background(), "note-1", "block", TargetTask, StatusSent); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	l.Close()

	l, err = OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger() reopen error = %v", err)
	}
	defer l.Close()

	entries, err := l.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries after reopen = %d, want 1", len(entries))
	}
}

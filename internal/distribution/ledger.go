package distribution

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Ledger records every dispatch outcome in a local sqlite database so
// past runs can be audited after the note itself has moved on.
type Ledger struct {
	db *sql.DB
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS dispatches (
	id         TEXT PRIMARY KEY,
	note_id    TEXT NOT NULL,
	block_text TEXT NOT NULL,
	target     TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_dispatches_note ON dispatches(note_id);
`

// OpenLedger opens (and if needed creates) the ledger database.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Record stores one dispatch outcome.
func (l *Ledger) Record(ctx context.Context, noteID, blockText string, target Target, status Status) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate dispatch id: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO dispatches (id, note_id, block_text, target, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), noteID, blockText, target.String(), status.String(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	return nil
}

// Entry is one recorded dispatch.
type Entry struct {
	ID        string
	NoteID    string
	BlockText string
	Target    string
	Status    string
	CreatedAt time.Time
}

// Recent returns the latest dispatches, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, note_id, block_text, target, status, created_at
		 FROM dispatches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.NoteID, &e.BlockText, &e.Target, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

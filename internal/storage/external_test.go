package storage

import (
	"os"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name     string
		visual   string
		editor   string
		wantName string
		wantArgs int
	}{
		{"visual wins", "code --wait", "nano", "code", 1},
		{"editor fallback", "", "nano", "nano", 0},
		{"vi default", "", "", "vi", 0},
		{"blank visual skipped", "   ", "", "vi", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)
			name, args := editorCommand()
			if name != tt.wantName {
				t.Errorf("editor = %q, want %q", name, tt.wantName)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v, want %d of them", args, tt.wantArgs)
			}
		})
	}
}

func TestExternalEditRoundTrip(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	edit, cmd, err := BeginExternalEdit("original text")
	if err != nil {
		t.Fatalf("BeginExternalEdit() error = %v", err)
	}
	if cmd.Args[0] != "true" {
		t.Errorf("command = %q, want %q", cmd.Args[0], "true")
	}
	if cmd.Args[len(cmd.Args)-1] != edit.Path {
		t.Errorf("command does not end with temp path: %v", cmd.Args)
	}

	data, err := os.ReadFile(edit.Path)
	if err != nil {
		t.Fatalf("temp file unreadable: %v", err)
	}
	if string(data) != "original text" {
		t.Errorf("temp content = %q, want %q", data, "original text")
	}

	// Simulate the editor rewriting the file.
	if err := os.WriteFile(edit.Path, []byte("edited text"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, changed, err := edit.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if content != "edited text" {
		t.Errorf("content = %q, want %q", content, "edited text")
	}
	if !changed {
		t.Error("changed = false after edit")
	}
	if _, err := os.Stat(edit.Path); !os.IsNotExist(err) {
		t.Error("temp file not removed by Finish")
	}
}

func TestExternalEditUnchanged(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	edit, _, err := BeginExternalEdit("same text")
	if err != nil {
		t.Fatalf("BeginExternalEdit() error = %v", err)
	}
	_, changed, err := edit.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if changed {
		t.Error("changed = true for untouched file")
	}
}

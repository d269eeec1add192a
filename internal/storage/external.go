package storage

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExternalEdit is one round trip through the user's editor: the buffer
// is written to a temp file, the editor runs over it, and the result is
// read back when it exits.
type ExternalEdit struct {
	Path     string
	original string
}

// editorCommand resolves the editor the user asked for. VISUAL wins
// over EDITOR, and the value may carry flags ("code --wait").
func editorCommand() (string, []string) {
	raw := os.Getenv("VISUAL")
	if raw == "" {
		raw = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(raw) == "" {
		raw = "vi"
	}
	fields := strings.Fields(raw)
	return fields[0], fields[1:]
}

// BeginExternalEdit writes content to a per-process temp file and
// returns the edit session plus the command to hand to the terminal.
func BeginExternalEdit(content string) (*ExternalEdit, *exec.Cmd, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("kenotex_%d.md", os.Getpid()))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	name, args := editorCommand()
	cmd := exec.Command(name, append(args, path)...)
	return &ExternalEdit{Path: path, original: content}, cmd, nil
}

// Finish reads the edited file back and removes it. changed reports
// whether the editor altered the content.
func (e *ExternalEdit) Finish() (content string, changed bool, err error) {
	data, err := os.ReadFile(e.Path)
	os.Remove(e.Path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read temp file: %w", err)
	}
	content = string(data)
	return content, content != e.original, nil
}

package distribution

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"
)

// appleDateLayout renders a time the way AppleScript's date parser
// expects it, e.g. "January 02, 2006 at 03:04 PM".
const appleDateLayout = "January 02, 2006 at 03:04 PM"

// Runner executes the platform commands that actually deliver a block.
// Tests substitute a recorder.
type Runner interface {
	RunAppleScript(ctx context.Context, script string) error
	OpenURL(ctx context.Context, target string) error
}

type execRunner struct{}

// NewRunner returns the Runner backed by osascript and open.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) RunAppleScript(ctx context.Context, script string) error {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

func (execRunner) OpenURL(ctx context.Context, target string) error {
	out, err := exec.CommandContext(ctx, "open", target).CombinedOutput()
	if err != nil {
		return fmt.Errorf("open failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// escapeScript makes a string safe inside an AppleScript literal.
func escapeScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// escapeURL percent-encodes a callback-URL parameter. QueryEscape's
// plus signs confuse Bear and Obsidian, so spaces become %20.
func escapeURL(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// reminderScript creates one Reminders entry, optionally with a due
// date and a target list. The due date goes into the same properties
// record as the name; `make` accepts only one with-properties clause.
func reminderScript(title, body string, due time.Time, hasDue bool, list string) string {
	listClause := "default list"
	if list != "" {
		listClause = fmt.Sprintf("list \"%s\"", escapeScript(list))
	}
	props := fmt.Sprintf(`name:"%s", body:"%s"`, escapeScript(title), escapeScript(body))
	if hasDue {
		props += fmt.Sprintf(`, due date:date "%s"`, due.Format(appleDateLayout))
	}
	return fmt.Sprintf(`tell application "Reminders"
    tell %s
        make new reminder with properties {%s}
    end tell
end tell`, listClause, props)
}

// calendarScript creates a one-hour Calendar event.
func calendarScript(title, body string, start time.Time, calendar string) string {
	calClause := `first calendar whose name is not ""`
	if calendar != "" {
		calClause = fmt.Sprintf("calendar \"%s\"", escapeScript(calendar))
	}
	end := start.Add(time.Hour)
	return fmt.Sprintf(`tell application "Calendar"
    tell %s
        make new event with properties {summary:"%s", description:"%s", start date:date "%s", end date:date "%s"}
    end tell
end tell`, calClause, escapeScript(title), escapeScript(body),
		start.Format(appleDateLayout), end.Format(appleDateLayout))
}

// appleNoteScript creates a note in Notes.app.
func appleNoteScript(title, body, folder string) string {
	folderClause := "default account's first folder"
	if folder != "" {
		folderClause = fmt.Sprintf("folder \"%s\"", escapeScript(folder))
	}
	return fmt.Sprintf(`tell application "Notes"
    tell %s
        make new note with properties {name:"%s", body:"%s"}
    end tell
end tell`, folderClause, escapeScript(title), escapeScript(body))
}

// bearURL builds the Bear x-callback-url for a new note.
func bearURL(title, body string) string {
	return fmt.Sprintf("bear://x-callback-url/create?title=%s&text=%s", escapeURL(title), escapeURL(body))
}

// obsidianURL builds the Obsidian URI for a new note.
func obsidianURL(title, body, vault string) string {
	if vault != "" {
		return fmt.Sprintf("obsidian://new?vault=%s&name=%s&content=%s", escapeURL(vault), escapeURL(title), escapeURL(body))
	}
	return fmt.Sprintf("obsidian://new?name=%s&content=%s", escapeURL(title), escapeURL(body))
}

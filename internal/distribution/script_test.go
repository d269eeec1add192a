package distribution

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeScript(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"two\nlines", `two\nlines`},
	}
	for _, tt := range tests {
		if got := escapeScript(tt.in); got != tt.want {
			t.Errorf("escapeScript(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReminderScript(t *testing.T) {
	due := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	script := reminderScript("Buy milk", "two bottles", due, true, "Inbox")

	for _, want := range []string{
		`tell application "Reminders"`,
		`list "Inbox"`,
		`name:"Buy milk"`,
		`body:"two bottles"`,
		`due date:date "March 05, 2026 at 10:00 AM"`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("reminder script missing %q:\n%s", want, script)
		}
	}
	if strings.Count(script, "with properties") != 1 {
		t.Errorf("reminder script must carry a single properties record:\n%s", script)
	}

	script = reminderScript("Buy milk", "", time.Time{}, false, "")
	if !strings.Contains(script, "default list") {
		t.Errorf("reminder script missing default list:\n%s", script)
	}
	if strings.Contains(script, "due date") {
		t.Errorf("reminder script has due date without one:\n%s", script)
	}
}

func TestCalendarScript(t *testing.T) {
	start := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	script := calendarScript("Standup", "daily sync", start, "Work")

	for _, want := range []string{
		`tell application "Calendar"`,
		`calendar "Work"`,
		`summary:"Standup"`,
		`start date:date "March 05, 2026 at 02:30 PM"`,
		`end date:date "March 05, 2026 at 03:30 PM"`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("calendar script missing %q:\n%s", want, script)
		}
	}

	script = calendarScript("Standup", "", start, "")
	if !strings.Contains(script, `first calendar whose name is not ""`) {
		t.Errorf("calendar script missing default calendar clause:\n%s", script)
	}
}

func TestAppleNoteScript(t *testing.T) {
	script := appleNoteScript("Idea", "try the new api", "Drafts")
	for _, want := range []string{
		`tell application "Notes"`,
		`folder "Drafts"`,
		`name:"Idea"`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("note script missing %q:\n%s", want, script)
		}
	}

	script = appleNoteScript("Idea", "", "")
	if !strings.Contains(script, "default account's first folder") {
		t.Errorf("note script missing default folder clause:\n%s", script)
	}
}

func TestCallbackURLs(t *testing.T) {
	u := bearURL("My Note", "line one")
	if u != "bear://x-callback-url/create?title=My%20Note&text=line%20one" {
		t.Errorf("bearURL() = %q", u)
	}
	if strings.Contains(u, "+") {
		t.Errorf("bearURL() uses + for spaces: %q", u)
	}

	u = obsidianURL("My Note", "body", "Vault One")
	if u != "obsidian://new?vault=Vault%20One&name=My%20Note&content=body" {
		t.Errorf("obsidianURL() with vault = %q", u)
	}
	u = obsidianURL("My Note", "body", "")
	if u != "obsidian://new?name=My%20Note&content=body" {
		t.Errorf("obsidianURL() without vault = %q", u)
	}
}

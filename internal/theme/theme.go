// Package theme defines the builtin color palettes and the manager
// that resolves and cycles them.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one named palette. All values are hex colors.
type Theme struct {
	Name      string
	Bg        lipgloss.Color
	Fg        lipgloss.Color
	Cursor    lipgloss.Color
	Selection lipgloss.Color
	Border    lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Panel     lipgloss.Color
}

var tokyoNight = Theme{
	Name:      "tokyo_night",
	Bg:        "#1a1b26",
	Fg:        "#c0caf5",
	Cursor:    "#c0caf5",
	Selection: "#33467c",
	Border:    "#3b4261",
	Accent:    "#7aa2f7",
	Success:   "#9ece6a",
	Warning:   "#e0af68",
	Error:     "#f7768e",
	Panel:     "#16161e",
}

var gruvbox = Theme{
	Name:      "gruvbox",
	Bg:        "#282828",
	Fg:        "#ebdbb2",
	Cursor:    "#ebdbb2",
	Selection: "#504945",
	Border:    "#665c54",
	Accent:    "#83a598",
	Success:   "#b8bb26",
	Warning:   "#fabd2f",
	Error:     "#fb4934",
	Panel:     "#1d2021",
}

var nord = Theme{
	Name:      "nord",
	Bg:        "#2e3440",
	Fg:        "#d8dee9",
	Cursor:    "#d8dee9",
	Selection: "#434c5e",
	Border:    "#4c566a",
	Accent:    "#88c0d0",
	Success:   "#a3be8c",
	Warning:   "#ebcb8b",
	Error:     "#bf616a",
	Panel:     "#3b4252",
}

var builtins = []Theme{tokyoNight, gruvbox, nord}

// Manager tracks the active theme and cycles through the builtins.
type Manager struct {
	current int
}

// NewManager starts on the named theme, or the default when the name
// is unknown.
func NewManager(name string) *Manager {
	m := &Manager{}
	m.Set(name)
	return m
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	return builtins[m.current]
}

// Set activates the named theme. Names are lowercased and spaces map
// to underscores, so "Tokyo Night" resolves. Unknown names fall back
// to the default without changing an already-set theme.
func (m *Manager) Set(name string) Theme {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	for i, t := range builtins {
		if t.Name == key {
			m.current = i
			return t
		}
	}
	return m.Current()
}

// Cycle advances to the next builtin theme and returns it.
func (m *Manager) Cycle() Theme {
	m.current = (m.current + 1) % len(builtins)
	return m.Current()
}

// Names lists the builtin theme names in cycle order.
func Names() []string {
	out := make([]string, len(builtins))
	for i, t := range builtins {
		out[i] = t.Name
	}
	return out
}

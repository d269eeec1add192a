package components

// SpinnerComponent cycles braille frames while a dispatch is in
// flight. The model advances it on its tick; the processing overlay
// renders it in the footer.
type SpinnerComponent struct {
	frames  []string
	current int
	message string
}

// NewSpinnerComponent creates a spinner with a trailing message.
func NewSpinnerComponent(message string) *SpinnerComponent {
	return &SpinnerComponent{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
	}
}

// Tick advances to the next frame.
func (s *SpinnerComponent) Tick() {
	s.current = (s.current + 1) % len(s.frames)
}

// Render returns the current frame followed by the message.
func (s *SpinnerComponent) Render() string {
	if s.message == "" {
		return s.frames[s.current]
	}
	return s.frames[s.current] + " " + s.message
}

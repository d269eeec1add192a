package editor

import "strings"

// Shape records how a register payload was captured, which decides
// how paste re-inserts it.
type Shape int

const (
	ShapeCharacter Shape = iota
	ShapeLine
	ShapeBlock
)

func (s Shape) String() string {
	switch s {
	case ShapeCharacter:
		return "character"
	case ShapeLine:
		return "line"
	case ShapeBlock:
		return "block"
	}
	return "unknown"
}

// Register is the single clipboard slot. Every yank or delete
// overwrites it; every paste reads it.
type Register struct {
	lines  []string
	shape  Shape
	set    bool
	mirror func(string)
}

// Mirror installs a callback invoked with the payload text after
// every write. Used to push yanks to the system clipboard.
func (r *Register) Mirror(fn func(string)) {
	r.mirror = fn
}

// Set overwrites the register with lines captured as shape.
func (r *Register) Set(lines []string, shape Shape) {
	r.lines = append([]string(nil), lines...)
	r.shape = shape
	r.set = true
	if r.mirror != nil {
		r.mirror(r.Text())
	}
}

// SetText overwrites the register with text split on newlines.
func (r *Register) SetText(text string, shape Shape) {
	r.Set(strings.Split(text, "\n"), shape)
}

// Get returns the payload lines and shape.
func (r *Register) Get() ([]string, Shape) {
	return append([]string(nil), r.lines...), r.shape
}

// Text returns the payload joined with newlines.
func (r *Register) Text() string {
	return strings.Join(r.lines, "\n")
}

// Empty reports whether the register has never been written.
func (r *Register) Empty() bool {
	return !r.set
}

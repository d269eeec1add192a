package editor

import "github.com/kenxcomp/kenotex/internal/grapheme"

// The keymap is the single source of truth for key resolution: a
// prefix tree keyed by raw key tokens, with per-mode actions at the
// terminal nodes. Operators and their motion targets are the one
// composition the tree does not enumerate; Resolve falls back to
// operator+motion pairing when a sequence leaves the tree.

// ResolveOutcome classifies a lookup.
type ResolveOutcome int

const (
	// ResolveNoMatch means the sequence matches nothing and no
	// operator composition applies; the caller discards it.
	ResolveNoMatch ResolveOutcome = iota
	// ResolvePending means the sequence is a strict prefix of at
	// least one binding in this mode; the caller awaits more keys.
	ResolvePending
	// ResolveMatch carries a fully resolved action.
	ResolveMatch
)

// Resolution is the result of resolving a pending key sequence.
type Resolution struct {
	Outcome ResolveOutcome
	Action  Action
}

type keyNode struct {
	children map[string]*keyNode
	actions  map[Mode]Action
	reach    uint16
}

func newKeyNode() *keyNode {
	return &keyNode{children: make(map[string]*keyNode), actions: make(map[Mode]Action)}
}

func (n *keyNode) reachable(mode Mode) bool {
	return n.reach&(1<<uint(mode)) != 0
}

// Keymap resolves (mode, key sequence) pairs to actions.
type Keymap struct {
	root    *keyNode
	ops     []opBinding
	motions map[string]Motion
	leader  string
}

type opBinding struct {
	seq []string
	op  Operator
}

// Insert registers action for sequence in mode.
func (k *Keymap) Insert(mode Mode, sequence []string, action Action) {
	node := k.root
	node.reach |= 1 << uint(mode)
	for _, token := range sequence {
		child, ok := node.children[token]
		if !ok {
			child = newKeyNode()
			node.children[token] = child
		}
		child.reach |= 1 << uint(mode)
		node = child
	}
	node.actions[mode] = action
}

// Resolve looks up sequence for mode. Exact matches win; otherwise a
// strict prefix of a longer binding awaits more input; otherwise the
// sequence is tried as operator-plus-motion; otherwise it is invalid.
func (k *Keymap) Resolve(mode Mode, sequence []string) Resolution {
	node := k.root
	for _, token := range sequence {
		child, ok := node.children[token]
		if !ok {
			node = nil
			break
		}
		node = child
	}

	if node != nil {
		if act, ok := node.actions[mode]; ok {
			return Resolution{Outcome: ResolveMatch, Action: act}
		}
		if len(node.children) > 0 && node.reachable(mode) {
			return Resolution{Outcome: ResolvePending}
		}
	}

	if mode == ModeNormal && len(sequence) >= 2 {
		last := sequence[len(sequence)-1]
		if motion, ok := k.motions[last]; ok {
			if op, ok := k.lookupOp(sequence[:len(sequence)-1]); ok {
				return Resolution{
					Outcome: ResolveMatch,
					Action:  Action{Kind: ActOperatorMotion, Op: op, Motion: motion},
				}
			}
		}
	}

	return Resolution{Outcome: ResolveNoMatch}
}

func (k *Keymap) lookupOp(seq []string) (Operator, bool) {
	for _, ob := range k.ops {
		if len(ob.seq) != len(seq) {
			continue
		}
		same := true
		for i := range seq {
			if ob.seq[i] != seq[i] {
				same = false
				break
			}
		}
		if same {
			return ob.op, true
		}
	}
	return OpNone, false
}

// Leader returns the configured leader key token.
func (k *Keymap) Leader() string {
	return k.leader
}

var allVisual = []Mode{ModeVisualChar, ModeVisualLine, ModeVisualBlock}
var normalAndVisual = []Mode{ModeNormal, ModeVisualChar, ModeVisualLine, ModeVisualBlock}

// commandSpec declares one logical command: the name configuration
// remaps, its default key, and where it binds. Motion is set for
// commands usable as operator targets.
type commandSpec struct {
	name   string
	key    string
	action ActionKind
	motion Motion
	modes  []Mode
	leader bool
}

var commandTable = []commandSpec{
	{name: "move_left", key: "h", action: ActMoveLeft, motion: MotionLeft, modes: normalAndVisual},
	{name: "move_down", key: "j", action: ActMoveDown, motion: MotionDown, modes: normalAndVisual},
	{name: "move_up", key: "k", action: ActMoveUp, motion: MotionUp, modes: normalAndVisual},
	{name: "move_right", key: "l", action: ActMoveRight, motion: MotionRight, modes: normalAndVisual},
	{name: "word_forward", key: "w", action: ActWordForward, motion: MotionWordForward, modes: normalAndVisual},
	{name: "word_backward", key: "b", action: ActWordBackward, motion: MotionWordBackward, modes: normalAndVisual},
	{name: "line_start", key: "0", action: ActLineStart, motion: MotionLineStart, modes: normalAndVisual},
	{name: "line_end", key: "$", action: ActLineEnd, motion: MotionLineEnd, modes: normalAndVisual},
	{name: "first_line", key: "gg", action: ActFirstLine, motion: MotionFirstLine, modes: normalAndVisual},
	{name: "last_line", key: "G", action: ActLastLine, motion: MotionLastLine, modes: normalAndVisual},

	{name: "insert", key: "i", action: ActInsert, modes: []Mode{ModeNormal}},
	{name: "insert_line_start", key: "I", action: ActInsertLineStart, modes: []Mode{ModeNormal}},
	{name: "append", key: "a", action: ActAppend, modes: []Mode{ModeNormal}},
	{name: "append_line_end", key: "A", action: ActAppendLineEnd, modes: []Mode{ModeNormal}},
	{name: "open_below", key: "o", action: ActOpenBelow, modes: []Mode{ModeNormal}},
	{name: "open_above", key: "O", action: ActOpenAbove, modes: []Mode{ModeNormal}},

	{name: "visual", key: "v", action: ActVisualChar, modes: []Mode{ModeNormal}},
	{name: "visual_line", key: "V", action: ActVisualLine, modes: []Mode{ModeNormal}},
	{name: "visual_block", key: "ctrl+v", action: ActVisualBlock, modes: []Mode{ModeNormal}},

	{name: "delete_char", key: "x", action: ActDeleteChar, modes: []Mode{ModeNormal}},
	{name: "paste_after", key: "p", action: ActPasteAfter, modes: []Mode{ModeNormal}},
	{name: "paste_before", key: "P", action: ActPasteBefore, modes: []Mode{ModeNormal}},
	{name: "undo", key: "u", action: ActUndo, modes: []Mode{ModeNormal}},
	{name: "redo", key: "ctrl+r", action: ActRedo, modes: []Mode{ModeNormal}},

	{name: "search", key: "/", action: ActSearchStart, modes: normalAndVisual},
	{name: "find", key: "f", action: ActSearchStart, modes: normalAndVisual},
	{name: "search_next", key: "n", action: ActSearchNext, modes: []Mode{ModeNormal}},
	{name: "search_prev", key: "N", action: ActSearchPrev, modes: []Mode{ModeNormal}},
	{name: "theme_cycle", key: "T", action: ActThemeCycle, modes: []Mode{ModeNormal}},
	{name: "quit", key: "ctrl+c", action: ActQuit, modes: []Mode{ModeNormal}},

	{name: "block_insert", key: "I", action: ActBlockInsert, modes: []Mode{ModeVisualBlock}},
	{name: "block_append", key: "A", action: ActBlockAppend, modes: []Mode{ModeVisualBlock}},

	{name: "leader_process", key: "s", action: ActProcess, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_list", key: "l", action: ActOpenList, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_new", key: "nn", action: ActNewNote, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_save", key: "w", action: ActSave, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_quit", key: "q", action: ActQuit, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_external", key: "e", action: ActExternalEdit, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_hints", key: "h", action: ActToggleHints, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_reload", key: "r", action: ActReload, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_checkbox_toggle", key: "t", action: ActCheckboxToggle, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_checkbox_insert", key: "T", action: ActCheckboxInsert, modes: []Mode{ModeNormal}, leader: true},

	{name: "leader_bold", key: "b", action: ActFormatBold, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_italic", key: "i", action: ActFormatItalic, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_strike", key: "x", action: ActFormatStrike, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_code", key: "c", action: ActFormatCode, modes: []Mode{ModeNormal}, leader: true},
	{name: "leader_fence", key: "f", action: ActFormatCodeFence, modes: []Mode{ModeNormal}, leader: true},

	{name: "leader_bold", key: "b", action: ActVisualBold, modes: allVisual, leader: true},
	{name: "leader_italic", key: "i", action: ActVisualItalic, modes: allVisual, leader: true},
	{name: "leader_strike", key: "x", action: ActVisualStrike, modes: allVisual, leader: true},
	{name: "leader_code", key: "c", action: ActVisualCode, modes: allVisual, leader: true},
	{name: "leader_fence", key: "f", action: ActVisualCodeFence, modes: allVisual, leader: true},
}

// operatorSpec declares an operator key: doubled it acts on the
// current line, in visual mode it acts on the selection, and followed
// by a motion it acts over the motion's range.
type operatorSpec struct {
	name       string
	key        string
	op         Operator
	lineAction ActionKind
	visAction  ActionKind
}

var operatorTable = []operatorSpec{
	{name: "delete", key: "d", op: OpDelete, lineAction: ActDeleteLine, visAction: ActVisualDelete},
	{name: "yank", key: "y", op: OpYank, lineAction: ActYankLine, visAction: ActVisualYank},
	{name: "indent", key: ">", op: OpIndent, lineAction: ActIndentLine, visAction: ActVisualIndent},
	{name: "dedent", key: "<", op: OpDedent, lineAction: ActDedentLine, visAction: ActVisualDedent},
	{name: "comment", key: "gc", op: OpComment, lineAction: ActToggleCommentLine, visAction: ActVisualComment},
}

// Visual mode also deletes with x, matching the delete operator.
const visualDeleteAltKey = "x"

// Arrow keys always mirror the stock motions, even when the letter
// motions are remapped.
var arrowBindings = []struct {
	key    string
	action ActionKind
}{
	{"left", ActMoveLeft},
	{"down", ActMoveDown},
	{"up", ActMoveUp},
	{"right", ActMoveRight},
}

// NewKeymap builds the key table from the built-in commands with
// per-name key overrides applied. leader introduces the application
// command layer; "space" and "" both mean the space key.
func NewKeymap(leader string, overrides map[string]string) *Keymap {
	k := &Keymap{root: newKeyNode(), motions: make(map[string]Motion)}
	k.leader = normalizeKey(leader)
	if k.leader == "" {
		k.leader = " "
	}

	keyFor := func(name, def string) string {
		if v, ok := overrides[name]; ok && v != "" {
			return v
		}
		return def
	}

	var multiMotions []struct {
		seq    []string
		motion Motion
	}

	for _, cs := range commandTable {
		seq := ParseSequence(keyFor(cs.name, cs.key))
		if len(seq) == 0 {
			continue
		}
		if cs.leader {
			seq = append([]string{k.leader}, seq...)
		}
		for _, mode := range cs.modes {
			k.Insert(mode, seq, Action{Kind: cs.action})
		}
		if cs.motion != MotionNone {
			if len(seq) == 1 {
				k.motions[seq[0]] = cs.motion
			} else {
				multiMotions = append(multiMotions, struct {
					seq    []string
					motion Motion
				}{seq, cs.motion})
			}
		}
	}

	for _, os := range operatorTable {
		seq := ParseSequence(keyFor(os.name, os.key))
		if len(seq) == 0 {
			continue
		}
		k.ops = append(k.ops, opBinding{seq: seq, op: os.op})

		doubled := append(append([]string{}, seq...), seq[len(seq)-1])
		k.Insert(ModeNormal, doubled, Action{Kind: os.lineAction})

		for _, mode := range allVisual {
			k.Insert(mode, seq, Action{Kind: os.visAction})
		}

		// Multi-token motions cannot be composed by the fallback, so
		// operator+motion pairs for them are table entries.
		for _, mm := range multiMotions {
			combo := append(append([]string{}, seq...), mm.seq...)
			k.Insert(ModeNormal, combo, Action{Kind: ActOperatorMotion, Op: os.op, Motion: mm.motion})
		}
	}

	for _, mode := range allVisual {
		k.Insert(mode, []string{visualDeleteAltKey}, Action{Kind: ActVisualDelete})
	}

	for _, ab := range arrowBindings {
		for _, mode := range normalAndVisual {
			k.Insert(mode, []string{ab.key}, Action{Kind: ab.action})
		}
	}

	return k
}

// DefaultKeymap builds the keymap with stock bindings and the space
// leader.
func DefaultKeymap() *Keymap {
	return NewKeymap(" ", nil)
}

var namedKeys = map[string]bool{
	"esc": true, "enter": true, "tab": true, "backspace": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"delete": true, "insert": true,
}

// ParseSequence splits a configured key string into key tokens.
// Named keys and modifier combos are single tokens; anything else
// splits per grapheme cluster, so "nn" is two keystrokes.
func ParseSequence(key string) []string {
	key = normalizeKey(key)
	if key == "" {
		return nil
	}
	if namedKeys[key] || containsPlus(key) {
		return []string{key}
	}
	return grapheme.Clusters(key)
}

func normalizeKey(key string) string {
	if key == "space" {
		return " "
	}
	return key
}

func containsPlus(key string) bool {
	for i := 0; i < len(key); i++ {
		if key[i] == '+' && len(key) > 1 {
			return true
		}
	}
	return false
}

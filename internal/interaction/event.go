package interaction

import "strings"

// Kind is the type of an input event.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	// PointerLeave fires when the pointer leaves the window. It ends a drag like PointerUp.
	PointerLeave
	KeyDown
)

var kindNames = [...]string{"pointer-down", "pointer-move", "pointer-up", "pointer-leave", "key-down"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Target says what the pointer was over when the event fired.
type Target int

const (
	TargetScene Target = iota
	// TargetUI marks events over panels and buttons. They never reach picking.
	TargetUI
)

// Event is one raw input event. X and Y are screen coordinates; Key is the key name for KeyDown.
type Event struct {
	Kind   Kind
	X, Y   float32
	Target Target
	Key    string
}

// Action is what a recognised key does.
type Action int

const (
	ActionNone Action = iota
	ActionRotateLeft
	ActionRotateRight
	ActionDelete
	ActionTranslateMode
	ActionRotateMode
	ActionDeselect
)

// Keymap maps lower-case key names to actions.
type Keymap map[string]Action

// DefaultKeymap returns the editor's key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		"q":          ActionRotateLeft,
		"arrowleft":  ActionRotateLeft,
		"e":          ActionRotateRight,
		"arrowright": ActionRotateRight,
		"delete":     ActionDelete,
		"backspace":  ActionDelete,
		"t":          ActionTranslateMode,
		"r":          ActionRotateMode,
		"escape":     ActionDeselect,
	}
}

// Lookup returns the action for key, matching case-insensitively.
func (k Keymap) Lookup(key string) (Action, bool) {
	a, ok := k[strings.ToLower(strings.TrimSpace(key))]
	return a, ok && a != ActionNone
}

// Result tells the caller whether an event changed anything.
type Result int

const (
	Ignored Result = iota
	Handled
)

func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "ignored"
}

// Phase is the controller state an event is dispatched on.
type Phase int

const (
	Idle Phase = iota
	Selected
	Dragging
)

var phaseNames = [...]string{"idle", "selected", "dragging"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Mode picks what a drag does to the grabbed item.
type Mode int

const (
	// ModeTranslate moves the item across the floor.
	ModeTranslate Mode = iota
	// ModeRotate turns the item around its origin; its position never changes.
	ModeRotate
)

func (m Mode) String() string {
	if m == ModeRotate {
		return "rotate"
	}
	return "translate"
}

package platform

import "strings"

// Modifiers is a bit set of keyboard modifiers held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all bits in m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

func (mods Modifiers) String() string {
	if mods == 0 {
		return "none"
	}
	var parts []string
	for _, m := range []struct {
		bit  Modifiers
		name string
	}{{ModShift, "shift"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModMeta, "meta"}} {
		if mods.Has(m.bit) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, "+")
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

// MouseEvent is a raw pointer event in device pixels.
type MouseEvent struct {
	X, Y   int32
	Mods   Modifiers
	Button MouseButton
	// Count is the click count for a press; zero means release.
	Count uint8
}

// KeyCode identifies a physical key. Printable keys report KeyRune and carry
// their text in KeyEvent.Text.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = [...]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
}

func (k KeyCode) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Key    KeyCode
	Mods   Modifiers
	Text   string
	Repeat bool
}

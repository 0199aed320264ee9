// Package keycode holds the USB HID usage IDs used by every input driver.
//
// Drivers translate their native scan codes into these values so apps can
// stay device independent.
package keycode

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a USB HID keyboard usage ID
type Code uint8

// Letters, digits, and editing keys
const (
	A            Code = 0x04
	B            Code = 0x05
	C            Code = 0x06
	D            Code = 0x07
	E            Code = 0x08
	F            Code = 0x09
	G            Code = 0x0A
	H            Code = 0x0B
	I            Code = 0x0C
	J            Code = 0x0D
	K            Code = 0x0E
	L            Code = 0x0F
	M            Code = 0x10
	N            Code = 0x11
	O            Code = 0x12
	P            Code = 0x13
	Q            Code = 0x14
	R            Code = 0x15
	S            Code = 0x16
	T            Code = 0x17
	U            Code = 0x18
	V            Code = 0x19
	W            Code = 0x1A
	X            Code = 0x1B
	Y            Code = 0x1C
	Z            Code = 0x1D
	One          Code = 0x1E
	Two          Code = 0x1F
	Three        Code = 0x20
	Four         Code = 0x21
	Five         Code = 0x22
	Six          Code = 0x23
	Seven        Code = 0x24
	Eight        Code = 0x25
	Nine         Code = 0x26
	Zero         Code = 0x27
	Enter        Code = 0x28
	Escape       Code = 0x29
	Backspace    Code = 0x2A
	Tab          Code = 0x2B
	Space        Code = 0x2C
	Minus        Code = 0x2D
	Equals       Code = 0x2E
	LeftBracket  Code = 0x2F
	RightBracket Code = 0x30
	Backslash    Code = 0x31
	Pound        Code = 0x32
	Semicolon    Code = 0x33
	Quote        Code = 0x34
	GraveAccent  Code = 0x35
	Comma        Code = 0x36
	Period       Code = 0x37
	ForwardSlash Code = 0x38
	CapsLock     Code = 0x39
	F1           Code = 0x3A
	F2           Code = 0x3B
	F3           Code = 0x3C
	F4           Code = 0x3D
	F5           Code = 0x3E
	F6           Code = 0x3F
	F7           Code = 0x40
	F8           Code = 0x41
	F9           Code = 0x42
	F10          Code = 0x43
	F11          Code = 0x44
	F12          Code = 0x45
	PrintScreen  Code = 0x46
	ScrollLock   Code = 0x47
	Pause        Code = 0x48
	Insert       Code = 0x49
	Home         Code = 0x4A
	PageUp       Code = 0x4B
	Delete       Code = 0x4C
	End          Code = 0x4D
	PageDown     Code = 0x4E
	RightArrow   Code = 0x4F
	LeftArrow    Code = 0x50
	DownArrow    Code = 0x51
	UpArrow      Code = 0x52
	LeftControl  Code = 0xE0
	LeftShift    Code = 0xE1
	LeftAlt      Code = 0xE2
	LeftGUI      Code = 0xE3
	RightControl Code = 0xE4
	RightShift   Code = 0xE5
	RightAlt     Code = 0xE6
	RightGUI     Code = 0xE7
)

// Aliases
const (
	Return  = Enter
	Control = LeftControl
	Shift   = LeftShift
	Alt     = LeftAlt
	Option  = LeftAlt
	GUI     = LeftGUI
	Command = LeftGUI
)

var names = map[Code]string{
	A:            "A",
	B:            "B",
	C:            "C",
	D:            "D",
	E:            "E",
	F:            "F",
	G:            "G",
	H:            "H",
	I:            "I",
	J:            "J",
	K:            "K",
	L:            "L",
	M:            "M",
	N:            "N",
	O:            "O",
	P:            "P",
	Q:            "Q",
	R:            "R",
	S:            "S",
	T:            "T",
	U:            "U",
	V:            "V",
	W:            "W",
	X:            "X",
	Y:            "Y",
	Z:            "Z",
	One:          "ONE",
	Two:          "TWO",
	Three:        "THREE",
	Four:         "FOUR",
	Five:         "FIVE",
	Six:          "SIX",
	Seven:        "SEVEN",
	Eight:        "EIGHT",
	Nine:         "NINE",
	Zero:         "ZERO",
	Enter:        "ENTER",
	Escape:       "ESCAPE",
	Backspace:    "BACKSPACE",
	Tab:          "TAB",
	Space:        "SPACE",
	Minus:        "MINUS",
	Equals:       "EQUALS",
	LeftBracket:  "LEFT_BRACKET",
	RightBracket: "RIGHT_BRACKET",
	Backslash:    "BACKSLASH",
	Pound:        "POUND",
	Semicolon:    "SEMICOLON",
	Quote:        "QUOTE",
	GraveAccent:  "GRAVE_ACCENT",
	Comma:        "COMMA",
	Period:       "PERIOD",
	ForwardSlash: "FORWARD_SLASH",
	CapsLock:     "CAPS_LOCK",
	F1:           "F1",
	F2:           "F2",
	F3:           "F3",
	F4:           "F4",
	F5:           "F5",
	F6:           "F6",
	F7:           "F7",
	F8:           "F8",
	F9:           "F9",
	F10:          "F10",
	F11:          "F11",
	F12:          "F12",
	PrintScreen:  "PRINT_SCREEN",
	ScrollLock:   "SCROLL_LOCK",
	Pause:        "PAUSE",
	Insert:       "INSERT",
	Home:         "HOME",
	PageUp:       "PAGE_UP",
	Delete:       "DELETE",
	End:          "END",
	PageDown:     "PAGE_DOWN",
	RightArrow:   "RIGHT_ARROW",
	LeftArrow:    "LEFT_ARROW",
	DownArrow:    "DOWN_ARROW",
	UpArrow:      "UP_ARROW",
	LeftControl:  "LEFT_CONTROL",
	LeftShift:    "LEFT_SHIFT",
	LeftAlt:      "LEFT_ALT",
	LeftGUI:      "LEFT_GUI",
	RightControl: "RIGHT_CONTROL",
	RightShift:   "RIGHT_SHIFT",
	RightAlt:     "RIGHT_ALT",
	RightGUI:     "RIGHT_GUI",
}

var byName = func() map[string]Code {
	m := make(map[string]Code, len(names))
	for c, n := range names {
		m[n] = c
	}
	return m
}()

// String returns the canonical name, or KC_0xNN for unmapped codes
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("KC_0x%02X", uint8(c))
}

// Known reports whether c has a name in the table
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// IsLetter reports whether c is A through Z
func (c Code) IsLetter() bool {
	return c >= A && c <= Z
}

// Parse resolves a key name such as "enter" or "UP_ARROW"
func Parse(name string) (Code, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	if c, ok := byName[key]; ok {
		return c, nil
	}
	switch key {
	case "UP", "DOWN", "LEFT", "RIGHT":
		return byName[key+"_ARROW"], nil
	case "ESC":
		return Escape, nil
	case "RETURN":
		return Return, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// All returns every named code in ascending order
func All() []Code {
	all := make([]Code, 0, len(names))
	for c := range names {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

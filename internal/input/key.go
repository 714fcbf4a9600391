package input

import "fmt"

// Key is one logical key press. Values below 256 are the raw byte the
// terminal sent; the named keys start above that range.
type Key uint32

const (
	KeyNone      Key = 0
	KeyCtrlC     Key = 0x03
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 0x7f
)

// Named keys.
const (
	KeyUnknown Key = 257 + iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCtrlUp
	KeyCtrlDown
	KeyCtrlLeft
	KeyCtrlRight
	KeyCtrlHome
	KeyCtrlEnd
	KeyCtrlM
	KeyDelete
	KeyResize
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyCtrlUp:    "Ctrl+Up",
	KeyCtrlDown:  "Ctrl+Down",
	KeyCtrlLeft:  "Ctrl+Left",
	KeyCtrlRight: "Ctrl+Right",
	KeyCtrlHome:  "Ctrl+Home",
	KeyCtrlEnd:   "Ctrl+End",
	KeyCtrlM:     "Ctrl+M",
	KeyDelete:    "Delete",
	KeyResize:    "Resize",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
}

// IsNamed reports whether k is one of the named keys rather than a byte.
func (k Key) IsNamed() bool {
	return k > 0xff
}

// Byte returns the raw byte of a non-named key.
func (k Key) Byte() (byte, bool) {
	if k.IsNamed() {
		return 0, false
	}
	return byte(k), true
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k.IsNamed():
		return fmt.Sprintf("Key(%d)", uint32(k))
	case k >= 0x20 && k < 0x7f:
		return fmt.Sprintf("%q", rune(k))
	default:
		return fmt.Sprintf("0x%02x", uint32(k))
	}
}

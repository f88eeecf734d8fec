package input

import "strings"

// Key is a physical key, independent of keyboard layout.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyShiftLeft
	KeyShiftRight
	KeyCtrlLeft
	KeyCtrlRight
	KeyAltLeft
	KeyAltRight
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	keyCount
)

var (
	keyNames  [keyCount]string
	keyByName = make(map[string]Key, keyCount)
)

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('a' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	fkeys := []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12"}
	for i, name := range fkeys {
		keyNames[KeyF1+Key(i)] = name
	}

	keyNames[KeyUnknown] = "unknown"
	keyNames[KeySpace] = "space"
	keyNames[KeyEscape] = "escape"
	keyNames[KeyEnter] = "enter"
	keyNames[KeyTab] = "tab"
	keyNames[KeyBackspace] = "backspace"
	keyNames[KeyShiftLeft] = "lshift"
	keyNames[KeyShiftRight] = "rshift"
	keyNames[KeyCtrlLeft] = "lctrl"
	keyNames[KeyCtrlRight] = "rctrl"
	keyNames[KeyAltLeft] = "lalt"
	keyNames[KeyAltRight] = "ralt"
	keyNames[KeyUp] = "up"
	keyNames[KeyDown] = "down"
	keyNames[KeyLeft] = "left"
	keyNames[KeyRight] = "right"

	for k := KeyUnknown + 1; k < keyCount; k++ {
		keyByName[keyNames[k]] = k
	}
}

// String returns the key's config name.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey looks up a key by its config name, case-insensitively.
func ParseKey(name string) (Key, bool) {
	k, ok := keyByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gridview/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_SPACE:     input.KeySpace,
	sdl.SCANCODE_ESCAPE:    input.KeyEscape,
	sdl.SCANCODE_RETURN:    input.KeyEnter,
	sdl.SCANCODE_TAB:       input.KeyTab,
	sdl.SCANCODE_BACKSPACE: input.KeyBackspace,
	sdl.SCANCODE_LSHIFT:    input.KeyShiftLeft,
	sdl.SCANCODE_RSHIFT:    input.KeyShiftRight,
	sdl.SCANCODE_LCTRL:     input.KeyCtrlLeft,
	sdl.SCANCODE_RCTRL:     input.KeyCtrlRight,
	sdl.SCANCODE_LALT:      input.KeyAltLeft,
	sdl.SCANCODE_RALT:      input.KeyAltRight,
	sdl.SCANCODE_UP:        input.KeyUp,
	sdl.SCANCODE_DOWN:      input.KeyDown,
	sdl.SCANCODE_LEFT:      input.KeyLeft,
	sdl.SCANCODE_RIGHT:     input.KeyRight,
	sdl.SCANCODE_0:         input.Key0,
}

func init() {
	for i := 0; i < 26; i++ {
		scancodes[sdl.SCANCODE_A+sdl.Scancode(i)] = input.KeyA + input.Key(i)
	}
	// SDL orders the digit row 1..9 then 0.
	for i := 0; i < 9; i++ {
		scancodes[sdl.SCANCODE_1+sdl.Scancode(i)] = input.Key1 + input.Key(i)
	}
	for i := 0; i < 12; i++ {
		scancodes[sdl.SCANCODE_F1+sdl.Scancode(i)] = input.KeyF1 + input.Key(i)
	}
}

// KeyFromScancode maps a physical SDL key to an input key.
func KeyFromScancode(sc sdl.Scancode) input.Key {
	if k, ok := scancodes[sc]; ok {
		return k
	}
	return input.KeyUnknown
}

package input

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/logger"
)

// Keymap binds physical keys to actions. Each action has at most one key.
type Keymap map[Key]Action

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyW:         MoveForward,
		KeyS:         MoveBackward,
		KeyA:         MoveLeft,
		KeyD:         MoveRight,
		KeySpace:     MoveUp,
		KeyShiftLeft: MoveDown,
		KeyLeft:      LookLeft,
		KeyRight:     LookRight,
		KeyUp:        LookUp,
		KeyDown:      LookDown,
		KeyH:         ToggleHelp,
		KeyEscape:    ReleaseCursor,
		KeyJ:         GrowGrid,
		KeyK:         ShrinkGrid,
		Key1:         ToggleSpin,
		Key2:         Recolor,
		Key3:         ToggleResize,
	}
}

// Bind assigns key to action, dropping the action's previous key. If key
// belonged to another action, that action is returned and left unbound.
func (m Keymap) Bind(a Action, key Key) (displaced Action, ok bool) {
	if prev, taken := m[key]; taken && prev != a {
		displaced, ok = prev, true
	}
	for k, bound := range m {
		if bound == a {
			delete(m, k)
		}
	}
	m[key] = a
	return displaced, ok
}

// KeyFor returns the key bound to a, if any.
func (m Keymap) KeyFor(a Action) (Key, bool) {
	for k, bound := range m {
		if bound == a {
			return k, true
		}
	}
	return KeyUnknown, false
}

// Apply rebinds actions from a name -> key-name map as found in config.
// Overrides are applied in action-name order so the result is deterministic.
// An action that loses its key to another one is logged and stays unbound.
func (m Keymap) Apply(overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a, ok := ParseAction(name)
		if !ok {
			return fmt.Errorf("unknown action %q", name)
		}
		k, ok := ParseKey(overrides[name])
		if !ok {
			return fmt.Errorf("unknown key %q for action %s", overrides[name], name)
		}
		if lost, ok := m.Bind(a, k); ok {
			logger.Named("input").Warn("key rebinding leaves action unbound",
				zap.Stringer("key", k),
				zap.Stringer("bound_to", a),
				zap.Stringer("unbound", lost),
			)
		}
	}
	return nil
}

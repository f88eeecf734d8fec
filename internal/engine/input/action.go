package input

// Action is a logical control, independent of the key bound to it.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown

	LookLeft
	LookRight
	LookUp
	LookDown

	ToggleHelp
	ReleaseCursor

	GrowGrid
	ShrinkGrid
	ToggleSpin
	Recolor
	ToggleResize

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:   "forward",
	MoveBackward:  "backward",
	MoveLeft:      "left",
	MoveRight:     "right",
	MoveUp:        "up",
	MoveDown:      "down",
	LookLeft:      "look_left",
	LookRight:     "look_right",
	LookUp:        "look_up",
	LookDown:      "look_down",
	ToggleHelp:    "help",
	ReleaseCursor: "release",
	GrowGrid:      "grow",
	ShrinkGrid:    "shrink",
	ToggleSpin:    "spin",
	Recolor:       "recolor",
	ToggleResize:  "resize",
}

// String returns the action's config name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction looks up an action by its config name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

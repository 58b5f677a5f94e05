package components

// UI component constants
const (
	// PaneReservedLines is the number of lines reserved for UI chrome
	// (title line, separator, scroll position) when showing full-screen
	// panes like YAML, describe, logs or history. This ensures content
	// doesn't overflow the terminal.
	PaneReservedLines = 3

	// MinPickerHeight is the smallest usable height for picker overlays.
	// Below this the list degrades to an unreadable sliver.
	MinPickerHeight = 10

	// PickerWidth is the fixed width for picker overlays. Wide enough for
	// context and namespace names without dominating the screen.
	PickerWidth = 60
)

package tui

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyCategory = "c"
	keyPeriod   = "p"
	keyReload   = "r"
)

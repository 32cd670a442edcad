package ui

import "slidepane/internal/panel"

// SwipeMsg is sent when the user performs a directional swipe (arrow keys
// in the demo).
type SwipeMsg struct {
	Dir panel.Direction
}

// OpenPanelMsg requests a specific side pane programmatically (menu
// actions), bypassing the swipe mapping.
type OpenPanelMsg struct {
	Side panel.Side
}

// CollapsePanelsMsg closes whichever side pane is open.
type CollapsePanelsMsg struct{}

// JumpToMainMsg resets to the main pane with no animation.
type JumpToMainMsg struct{}

// ShellOutputMsg carries bytes read from the PTY for display.
type ShellOutputMsg struct {
	Data []byte
}

// ShellExitedMsg is sent when the shell command exits and its output
// stream closes.
type ShellExitedMsg struct{}

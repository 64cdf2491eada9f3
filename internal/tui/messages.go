package tui

import "github.com/shoko75/audioshelf/internal/browse"

// Message types for the TUI

// stateMsg carries a freshly published list state after a browse
// command completed.
type stateMsg browse.UIState

// favoriteToggledMsg signals that a favorite toggle finished.
type favoriteToggledMsg struct {
	ID  string
	Err error
}

package tui

// UI Text Constants
const (
	// Footer
	TextFooterIdle    = "Type a topic | ↑/↓ voice | ←/→ style | +/- duration | Enter to generate | Esc to quit"
	TextFooterRunning = "Esc to cancel generation | Ctrl+C to quit"
	TextFooterDone    = "Esc or Ctrl+C to exit"
)

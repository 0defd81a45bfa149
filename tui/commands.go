package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"viralengine/client"
	"viralengine/session"
	"viralengine/types"
)

// snapshotRefreshInterval is how often the view re-reads the session
// snapshot. The session itself polls the API on its own fixed cadence.
const snapshotRefreshInterval = 500 * time.Millisecond

// loadVoices creates a command to fetch the voice catalog
func loadVoices(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		voices, err := c.ListVoices(context.Background())
		return VoicesLoadedMsg{Voices: voices, Err: err}
	}
}

// submitRequest creates a command to submit the generation request
func submitRequest(sess *session.Session, req types.GenerationRequest) tea.Cmd {
	return func() tea.Msg {
		return SubmitResultMsg{Err: sess.Submit(context.Background(), req)}
	}
}

// tickCmd creates a command that ticks every 500ms to refresh the snapshot
func tickCmd() tea.Cmd {
	return tea.Tick(snapshotRefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
